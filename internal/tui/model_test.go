package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegislabs/aegis/internal/api"
	"github.com/aegislabs/aegis/internal/chat"
	"github.com/aegislabs/aegis/internal/models"
)

// stubBackend satisfies chat.Backend without network access.
type stubBackend struct{}

func (stubBackend) ChatStream(ctx context.Context, question, conversationID string, fn api.ChunkFunc) (string, *api.StreamEnvelope, error) {
	fn("ok")
	return "ok", nil, nil
}

func (stubBackend) QuizStream(ctx context.Context, question string, fn api.ChunkFunc) (string, *api.StreamEnvelope, error) {
	fn("ok")
	return "ok", nil, nil
}

func (stubBackend) Analyze(ctx context.Context, target string) (*models.AnalyzeResponse, error) {
	return &models.AnalyzeResponse{ConversationID: "c1", Title: "Scan"}, nil
}

func newTestModel() Model {
	controller := chat.NewController(stubBackend{}, NewNotifier())
	return NewChatModel(controller, nil)
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestToStored(t *testing.T) {
	messages := []models.Message{
		models.NewUserMessage("hello"),
		models.NewSystemMessage("notice", models.StatusInfo),
		{ID: "a", Role: models.RoleAssistant, Content: "hi", State: models.StateDone},
		{ID: "s", Role: models.RoleAssistant, Scan: &models.ScanAttachment{Scanning: true}},
	}

	stored := toStored(messages)
	if len(stored) != 2 {
		t.Fatalf("toStored() kept %d messages, want 2", len(stored))
	}
	if stored[0].Role != "user" || stored[0].Content != "hello" {
		t.Errorf("stored[0] = %+v", stored[0])
	}
	if stored[1].Role != "assistant" || stored[1].Content != "hi" {
		t.Errorf("stored[1] = %+v", stored[1])
	}
}

func TestStreamingDetection(t *testing.T) {
	m := newTestModel()
	if m.streaming() {
		t.Error("fresh model should not be streaming")
	}

	m.messages = []models.Message{
		models.NewUserMessage("q"),
		models.NewAssistantPlaceholder(),
	}
	if !m.streaming() {
		t.Error("model with a placeholder turn should be streaming")
	}

	m.messages[1].State = models.StateDone
	if m.streaming() {
		t.Error("model with only terminal turns should not be streaming")
	}
}

func TestDispatchQuit(t *testing.T) {
	for _, input := range []string{"exit", "quit", "/exit", "/quit"} {
		t.Run(input, func(t *testing.T) {
			m := sized(newTestModel())
			_, cmd := m.dispatch(input)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("dispatch(%q) did not quit", input)
			}
		})
	}
}

func TestDispatchQuizOpensOverlay(t *testing.T) {
	m := sized(newTestModel())
	updated, _ := m.dispatch("/quiz")
	got := updated.(Model)

	if !got.quizActive {
		t.Error("bare /quiz should open the quiz overlay")
	}
	if got.quizSession == nil {
		t.Error("quiz overlay opened without a session")
	}
}

func TestDispatchNewResetsTitle(t *testing.T) {
	m := sized(newTestModel())
	m.title = "Old conversation"

	updated, _ := m.dispatch("/new")
	got := updated.(Model)
	if got.title != models.DefaultTitle {
		t.Errorf("title after /new = %q, want %q", got.title, models.DefaultTitle)
	}
}

func TestSuggestionsFollowInput(t *testing.T) {
	m := sized(newTestModel())

	m.textarea.SetValue("passwor")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	got := updated.(Model)

	if len(got.suggestions) == 0 {
		t.Fatal("expected suggestions for password input")
	}
	for _, s := range got.suggestions {
		if !strings.Contains(strings.ToLower(s), "password") {
			t.Errorf("suggestion %q does not match input", s)
		}
	}
}

func TestTabAcceptsSuggestion(t *testing.T) {
	m := sized(newTestModel())
	m.suggestions = []string{"How do I create a strong password?"}
	m.suggestCursor = 0

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	got := updated.(Model)

	if got.textarea.Value() != "How do I create a strong password?" {
		t.Errorf("textarea after tab = %q", got.textarea.Value())
	}
	if len(got.suggestions) != 0 {
		t.Error("suggestions should clear after completion")
	}
}

func TestMessagesChangedUpdatesViewport(t *testing.T) {
	m := sized(newTestModel())

	messages := []models.Message{
		models.NewUserMessage("what is phishing?"),
		{ID: "a", Role: models.RoleAssistant, Content: "Phishing is...", State: models.StateDone},
	}
	updated, _ := m.Update(messagesChangedMsg{messages: messages})
	got := updated.(Model)

	if len(got.messages) != 2 {
		t.Fatalf("model holds %d messages, want 2", len(got.messages))
	}
	view := got.viewport.View()
	if !strings.Contains(view, "what is phishing?") {
		t.Error("viewport missing user message")
	}
}

func TestConversationRecordedSetsTitle(t *testing.T) {
	m := sized(newTestModel())

	updated, _ := m.Update(conversationRecordedMsg{
		summary: models.ConversationSummary{ID: "c1", Title: "Phishing basics"},
	})
	got := updated.(Model)

	if got.title != "Phishing basics" {
		t.Errorf("title = %q, want %q", got.title, "Phishing basics")
	}
}

func TestRenderScanProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		wantPct  string
	}{
		{"start", 0, "0%"},
		{"half", 50, "50%"},
		{"done", 100, "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderScanProgress(&models.ScanAttachment{
				Target:   "https://example.com",
				Scanning: true,
				Progress: tt.progress,
			})
			if !strings.Contains(out, "https://example.com") {
				t.Error("progress line missing target")
			}
			if !strings.Contains(out, tt.wantPct) {
				t.Errorf("progress line missing %s: %q", tt.wantPct, out)
			}
		})
	}
}

func TestRenderScanResults(t *testing.T) {
	out := renderScanResults(`{"verdict":"suspicious","risk_score":72}`)
	if !strings.Contains(out, "verdict: suspicious") {
		t.Errorf("results missing verdict: %q", out)
	}
	if !strings.Contains(out, "risk_score: 72") {
		t.Errorf("results missing risk score: %q", out)
	}

	// Non-object payloads pass through as-is
	raw := renderScanResults("plain text verdict")
	if !strings.Contains(raw, "plain text verdict") {
		t.Errorf("raw payload not preserved: %q", raw)
	}
}

func TestEscQuitsWhenIdle(t *testing.T) {
	m := sized(newTestModel())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc on idle model should quit")
	}
}

func TestViewBeforeReady(t *testing.T) {
	m := newTestModel()
	view := m.View()
	if !strings.Contains(view, "Initializing") {
		t.Errorf("unready view = %q", view)
	}
}

func TestViewShowsWelcomeWhenEmpty(t *testing.T) {
	m := sized(newTestModel())
	view := m.View()
	if !strings.Contains(view, "Welcome to Aegis") {
		t.Error("empty chat should show the welcome screen")
	}
}
