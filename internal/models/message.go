// Package models contains data types and constants shared across the Aegis client.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Status is a presentation hint attached to a message. It has no
// behavioral effect; the TUI maps it to a color.
type Status string

const (
	StatusNormal  Status = "normal"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
	StatusSuccess Status = "success"
	StatusInfo    Status = "info"
)

// TerminalState marks a message past which no automated mutation occurs.
type TerminalState string

const (
	// StateStreaming means the message is still being filled in.
	StateStreaming TerminalState = ""
	StateDone      TerminalState = "done"
	StateStopped   TerminalState = "stopped"
	StateError     TerminalState = "error"
)

// Message is one turn in a conversation. Content is append-only while the
// turn is streaming and immutable once State is terminal. At most one of
// the attachment pointers is set; which one depends on how the turn was
// created.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Status    Status
	State     TerminalState

	Scan         *ScanAttachment
	Quiz         *QuizAttachment
	FileAnalysis *FileScanReport
	Tip          *SecurityTip
}

// ScanAttachment carries the transient progress and final results of a URL
// scan turn. Scanning and Progress are mutually exclusive with Results: the
// former are live while the scan runs, the latter is set exactly once when
// it finishes.
type ScanAttachment struct {
	Target   string
	Scanning bool
	Progress int // 0-100
	// Results is the backend's scanned_output payload, kept as raw JSON
	// and navigated with gjson where the TUI needs individual fields.
	Results string
}

// QuizAttachment marks a turn that presents a quiz question.
type QuizAttachment struct {
	Topic      string
	Difficulty string
	Question   string
	Options    []string
	Answer     int
}

// SecurityTip is a short standalone advice blurb the assistant can attach
// to a turn.
type SecurityTip struct {
	Title string
	Body  string
}

// NewUserMessage creates a user turn. User turns are terminal on creation.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		Status:    StatusNormal,
		State:     StateDone,
	}
}

// NewSystemMessage creates a system notice turn.
func NewSystemMessage(content string, status Status) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleSystem,
		Content:   content,
		Timestamp: time.Now(),
		Status:    status,
		State:     StateDone,
	}
}

// NewAssistantPlaceholder creates the empty assistant turn that a streaming
// response is accumulated into.
func NewAssistantPlaceholder() Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Status:    StatusNormal,
		State:     StateStreaming,
	}
}

// NewScanPlaceholder creates the assistant turn that tracks a running URL
// scan for target.
func NewScanPlaceholder(target string) Message {
	m := NewAssistantPlaceholder()
	m.Scan = &ScanAttachment{Target: target, Scanning: true}
	return m
}

// IsTerminal reports whether the message will receive no further updates.
func (m *Message) IsTerminal() bool {
	return m.State != StateStreaming
}
