package models

import "testing"

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("how do I spot phishing?")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "how do I spot phishing?" {
		t.Errorf("Content = %q", msg.Content)
	}
	if msg.State != StateDone {
		t.Errorf("State = %q, want %q", msg.State, StateDone)
	}
	if msg.ID == "" {
		t.Error("ID must be assigned")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp must be set")
	}
}

func TestNewSystemMessage(t *testing.T) {
	msg := NewSystemMessage("scan started", StatusInfo)

	if msg.Role != RoleSystem {
		t.Errorf("Role = %q, want %q", msg.Role, RoleSystem)
	}
	if msg.Status != StatusInfo {
		t.Errorf("Status = %q, want %q", msg.Status, StatusInfo)
	}
	if !msg.IsTerminal() {
		t.Error("System messages are terminal on creation")
	}
}

func TestNewAssistantPlaceholder(t *testing.T) {
	msg := NewAssistantPlaceholder()

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want %q", msg.Role, RoleAssistant)
	}
	if msg.Content != "" {
		t.Errorf("Content = %q, want empty", msg.Content)
	}
	if msg.IsTerminal() {
		t.Error("Placeholder must start in the streaming state")
	}
}

func TestNewScanPlaceholder(t *testing.T) {
	msg := NewScanPlaceholder("https://example.com")

	if msg.Scan == nil {
		t.Fatal("Scan attachment missing")
	}
	if msg.Scan.Target != "https://example.com" {
		t.Errorf("Target = %q", msg.Scan.Target)
	}
	if !msg.Scan.Scanning {
		t.Error("Scan must start in the scanning state")
	}
	if msg.Scan.Progress != 0 {
		t.Errorf("Progress = %d, want 0", msg.Scan.Progress)
	}
	if msg.IsTerminal() {
		t.Error("Scan placeholder must start in the streaming state")
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name  string
		state TerminalState
		want  bool
	}{
		{name: "streaming", state: StateStreaming, want: false},
		{name: "done", state: StateDone, want: true},
		{name: "stopped", state: StateStopped, want: true},
		{name: "error", state: StateError, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Message{State: tt.state}
			if got := msg.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageIDsAreUnique(t *testing.T) {
	a := NewUserMessage("one")
	b := NewUserMessage("two")
	if a.ID == b.ID {
		t.Errorf("Two messages share ID %q", a.ID)
	}
}

func TestFileScanReportClean(t *testing.T) {
	tests := []struct {
		name   string
		report FileScanReport
		want   bool
	}{
		{name: "no findings", report: FileScanReport{}, want: true},
		{
			name:   "infected",
			report: FileScanReport{ClamAV: ClamAVResult{Infected: true, Signature: "Eicar-Test-Signature"}},
			want:   false,
		},
		{
			name:   "prompt injection",
			report: FileScanReport{Prompt: PromptVerdict{Suspicious: true}},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.Clean(); got != tt.want {
				t.Errorf("Clean = %v, want %v", got, tt.want)
			}
		})
	}
}
