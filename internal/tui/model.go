package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"

	"github.com/aegislabs/aegis/internal/chat"
	"github.com/aegislabs/aegis/internal/history"
	"github.com/aegislabs/aegis/internal/models"
	"github.com/aegislabs/aegis/internal/quiz"
	"github.com/aegislabs/aegis/internal/render"
	"github.com/aegislabs/aegis/internal/suggest"
)

// Animation tick message
type animationTickMsg time.Time

// Messages forwarded from the controller into the bubbletea loop
type (
	messagesChangedMsg struct {
		messages []models.Message
	}
	conversationRecordedMsg struct {
		summary models.ConversationSummary
	}
)

// ProgramNotifier bridges controller callbacks to the running program. The
// controller may fire before the program exists, so attach is deferred and
// early updates are dropped.
type ProgramNotifier struct {
	mu sync.Mutex
	p  *tea.Program
}

func (n *ProgramNotifier) attach(p *tea.Program) {
	n.mu.Lock()
	n.p = p
	n.mu.Unlock()
}

func (n *ProgramNotifier) MessagesChanged(messages []models.Message) {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()
	if p != nil {
		p.Send(messagesChangedMsg{messages: messages})
	}
}

func (n *ProgramNotifier) ConversationRecorded(summary models.ConversationSummary) {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()
	if p != nil {
		p.Send(conversationRecordedMsg{summary: summary})
	}
}

// Model represents the chat TUI state
type Model struct {
	controller *chat.Controller
	store      *history.Store

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages       []models.Message
	title          string
	ready          bool
	err            error
	animationFrame int

	// Suggestions below the input
	suggestions   []string
	suggestCursor int

	// Quiz overlay state
	quizActive   bool
	quizSession  *quiz.Session
	quizCursor   int
	quizFeedback string
	quizSummary  *quiz.Summary

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model. store may be nil when local
// history caching is disabled.
func NewChatModel(controller *chat.Controller, store *history.Store) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a security question, or /scan <url>, /quiz..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		controller: controller,
		store:      store,
		textarea:   ta,
		spinner:    s,
		messages:   controller.Messages(),
		title:      models.DefaultTitle,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// streaming reports whether a turn is still being filled in.
func (m Model) streaming() bool {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if !m.messages[i].IsTerminal() {
			return true
		}
	}
	return false
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.quizActive {
		return m.updateQuiz(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 7
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.streaming() {
				m.controller.Stop()
			} else {
				return m, tea.Quit
			}

		case "tab":
			if len(m.suggestions) > 0 {
				m.textarea.SetValue(m.suggestions[m.suggestCursor])
				m.textarea.CursorEnd()
				m.suggestions = nil
				m.suggestCursor = 0
			}
			return m, nil

		case "ctrl+n":
			if len(m.suggestions) > 0 {
				m.suggestCursor = (m.suggestCursor + 1) % len(m.suggestions)
			}
			return m, nil

		case "ctrl+p":
			if len(m.suggestions) > 0 {
				m.suggestCursor--
				if m.suggestCursor < 0 {
					m.suggestCursor = len(m.suggestions) - 1
				}
			}
			return m, nil

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				break
			}
			m.textarea.Reset()
			m.suggestions = nil
			m.suggestCursor = 0
			return m.dispatch(input)
		}

	case messagesChangedMsg:
		wasStreaming := m.streaming()
		m.messages = msg.messages
		m.updateViewport()
		m.viewport.GotoBottom()
		if !wasStreaming && m.streaming() {
			cmds = append(cmds, m.spinner.Tick, animationTick())
		}

	case conversationRecordedMsg:
		m.title = msg.summary.Title
		if m.store != nil {
			if err := m.store.Put(msg.summary, toStored(m.messages)); err != nil {
				m.err = err
			}
		}

	case spinner.TickMsg:
		if m.streaming() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.streaming() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks.
	if _, ok := msg.(tea.KeyMsg); ok && !m.streaming() {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)

		m.suggestions = suggest.Filter(m.textarea.Value(), suggest.Candidates)
		if m.suggestCursor >= len(m.suggestions) {
			m.suggestCursor = 0
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// dispatch routes one line of input to a command or an exchange.
func (m Model) dispatch(input string) (tea.Model, tea.Cmd) {
	switch {
	case input == "exit" || input == "quit" || input == "/exit" || input == "/quit":
		return m, tea.Quit

	case input == "/new":
		m.controller.Reset()
		m.title = models.DefaultTitle
		return m, nil

	case input == "/quiz":
		m.quizActive = true
		m.quizSession = quiz.NewSession()
		m.quizCursor = 0
		m.quizFeedback = ""
		m.quizSummary = nil
		return m, nil

	case strings.HasPrefix(input, "/quiz "):
		m.controller.Send(chat.ModeQuiz, strings.TrimSpace(strings.TrimPrefix(input, "/quiz ")))

	case strings.HasPrefix(input, "/scan "):
		m.controller.Send(chat.ModeAnalyze, strings.TrimSpace(strings.TrimPrefix(input, "/scan ")))

	default:
		m.controller.Send(chat.ModeGeneral, input)
	}

	m.err = nil
	m.animationFrame = 0
	return m, tea.Batch(m.spinner.Tick, animationTick())
}

// toStored flattens the visible message list into persistable turns.
// System notices and scan progress are presentation state and are skipped.
func toStored(messages []models.Message) []models.StoredMessage {
	var out []models.StoredMessage
	for _, msg := range messages {
		if msg.Role == models.RoleSystem {
			continue
		}
		if msg.Scan != nil && msg.Scan.Scanning {
			continue
		}
		out = append(out, models.StoredMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return out
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.quizActive {
		return m.renderQuiz()
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("Aegis Security Assistant"),
		hintStyle.Render("  |  "),
		subtitleStyle.Render(m.title),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// Messages area
	var messagesContent string
	if len(m.messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	var inputContent string
	if m.streaming() {
		inputContent = m.renderLoadingAnimation()
	} else {
		parts := []string{
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		}
		if sg := m.renderSuggestions(); sg != "" {
			parts = append(parts, sg)
		}
		inputContent = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	// Status bar
	statusBar := m.renderStatusBar(contentWidth)
	sections = append(sections, statusBar)

	// Error display
	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("[*]")
	title := welcomeTitleStyle.Width(width).Render("Welcome to Aegis")
	subtitle := welcomeStyle.Width(width).Render(
		"Ask about passwords, phishing, malware and more.\n" +
			"/scan <url> checks a link, /quiz starts a practice round.")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderSuggestions renders the suggestion list under the input.
func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	var lines []string
	for i, s := range m.suggestions {
		style := suggestionStyle
		prefix := "  "
		if i == m.suggestCursor {
			style = suggestionSelectedStyle
			prefix = "> "
		}
		lines = append(lines, style.Render(prefix+s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderLoadingAnimation renders the animated streaming indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"|", "/", "-", "\\", "|", "/", "-", "\\"}
	barChars := []string{"#", "#", "#", "#", "#", "#", "#", "#", "=", "-", "."}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Aegis is thinking ")
	hint := hintStyle.Render("(Esc to stop)")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, hint)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Tab", "Complete"},
		{"Esc", "Stop/Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  |  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		switch msg.Role {
		case models.RoleUser:
			label := userLabelStyle.Render("You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)

		case models.RoleSystem:
			content.WriteString(systemNoticeStyle.Render(styleForStatus(msg.Status).Render(msg.Content)))

		default:
			label := assistantLabelStyle.Render("Aegis")
			body := m.renderAssistantBody(msg, bubbleWidth)
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(body)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderAssistantBody renders one assistant turn including any scan state.
func (m Model) renderAssistantBody(msg models.Message, width int) string {
	var parts []string

	text := msg.Content
	if text != "" {
		rendered, err := render.MarkdownWithWidth(text, width-4)
		if err != nil {
			rendered = text
		}
		parts = append(parts, strings.TrimRight(rendered, "\n"))
	}

	if msg.Scan != nil {
		if msg.Scan.Scanning {
			parts = append(parts, renderScanProgress(msg.Scan))
		} else if msg.Scan.Results != "" {
			parts = append(parts, renderScanResults(msg.Scan.Results))
		}
	}

	if msg.Status == models.StatusDanger && msg.State == models.StateError {
		return statusDangerStyle.Render(strings.Join(parts, "\n"))
	}
	return strings.Join(parts, "\n")
}

// renderScanProgress draws the progress bar for a running scan.
func renderScanProgress(scan *models.ScanAttachment) string {
	const barWidth = 24
	filled := scan.Progress * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
	line := fmt.Sprintf("Scanning %s  [%s] %d%%", scan.Target, bar, scan.Progress)
	return scanPanelStyle.Render(scanProgressStyle.Render(line))
}

// renderScanResults formats the backend's scan verdict. The payload shape
// is owned by the backend so top-level fields are listed generically.
func renderScanResults(results string) string {
	parsed := gjson.Parse(results)
	if !parsed.IsObject() {
		return scanPanelStyle.Render(scanFieldStyle.Render(results))
	}

	var lines []string
	parsed.ForEach(func(key, value gjson.Result) bool {
		v := value.String()
		if value.IsObject() || value.IsArray() {
			v = value.Raw
		}
		lines = append(lines, fmt.Sprintf("%s: %s", key.String(), v))
		return true
	})
	return scanPanelStyle.Render(scanFieldStyle.Render(strings.Join(lines, "\n")))
}

// styleForStatus maps a message status to its accent style.
func styleForStatus(status models.Status) lipgloss.Style {
	switch status {
	case models.StatusWarning:
		return statusWarningStyle
	case models.StatusDanger:
		return statusDangerStyle
	case models.StatusSuccess:
		return statusSuccessStyle
	case models.StatusInfo:
		return statusInfoStyle
	default:
		return lipgloss.NewStyle().Foreground(colorText)
	}
}

// RunChat wires a controller to a new program and runs the chat TUI.
func RunChat(backend chat.Backend, store *history.Store) error {
	notifier := &ProgramNotifier{}
	controller := chat.NewController(backend, notifier)
	return RunChatWithController(controller, notifier, store)
}

// RunChatWithController runs the chat TUI over an existing controller, for
// resuming a conversation loaded by the caller.
func RunChatWithController(controller *chat.Controller, notifier *ProgramNotifier, store *history.Store) error {
	m := NewChatModel(controller, store)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)
	notifier.attach(p)

	_, err := p.Run()
	return err
}

// NewNotifier returns a notifier usable with chat.NewController before the
// program exists.
func NewNotifier() *ProgramNotifier {
	return &ProgramNotifier{}
}
