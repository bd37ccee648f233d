// Package chat drives request/response exchanges with the Aegis backend:
// streaming answers, URL scans and quiz generation, with cooperative
// cancellation. The controller owns the in-memory message list and
// publishes functional updates to an observer; it never blocks the caller.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aegislabs/aegis/internal/api"
	"github.com/aegislabs/aegis/internal/models"
)

// Mode selects the endpoint and response protocol for one exchange.
type Mode string

const (
	ModeGeneral Mode = "general"
	ModeAnalyze Mode = "analyze"
	ModeQuiz    Mode = "quiz"
)

// StopMarker is appended to a streaming turn's content when the user
// cancels mid-stream.
const StopMarker = "\n\n[Stopped by user]"

// Fixed user-facing failure texts. Errors never propagate out of the
// controller; they become message content.
const (
	errTextNetwork = "Sorry, I couldn't reach the Aegis service. Please check your connection and try again."
	errTextScan    = "The scan could not be completed. Please try again."
)

// scanProgressInterval paces the simulated progress ticks shown while an
// analyze request is outstanding.
const scanProgressInterval = 400 * time.Millisecond

// Backend is the slice of the API client the controller needs.
type Backend interface {
	ChatStream(ctx context.Context, question, conversationID string, fn api.ChunkFunc) (string, *api.StreamEnvelope, error)
	QuizStream(ctx context.Context, question string, fn api.ChunkFunc) (string, *api.StreamEnvelope, error)
	Analyze(ctx context.Context, target string) (*models.AnalyzeResponse, error)
}

// Notifier observes controller state. MessagesChanged receives a fresh
// copy of the whole list on every mutation; ConversationRecorded fires
// once per completed exchange so the UI can select the chat and extend its
// history list.
type Notifier interface {
	MessagesChanged(messages []models.Message)
	ConversationRecorded(summary models.ConversationSummary)
}

// inflight tracks one outstanding request. stopped is the user-visible
// cancellation flag, kept distinct from the transport context so a clean
// "stopped by user" terminal state can be produced even when the abort is
// not immediately observed by the reader.
type inflight struct {
	cancel        context.CancelFunc
	placeholderID string
	stopped       atomic.Bool
	superseded    atomic.Bool
	terminal      atomic.Bool
}

// Controller runs at most one exchange at a time. Starting a new Send
// cancels whatever preceded it.
type Controller struct {
	backend  Backend
	notifier Notifier

	mu             sync.Mutex
	messages       []models.Message
	conversationID string
	current        *inflight
}

// NewController creates a controller bound to one conversation surface.
func NewController(backend Backend, notifier Notifier) *Controller {
	return &Controller{
		backend:  backend,
		notifier: notifier,
	}
}

// Messages returns a copy of the current message list.
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// ConversationID returns the active backend conversation, empty for a
// fresh session.
func (c *Controller) ConversationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversationID
}

// SetConversation resumes an existing conversation with its persisted
// turns.
func (c *Controller) SetConversation(id string, history []models.Message) {
	c.mu.Lock()
	c.cancelCurrentLocked()
	c.conversationID = id
	c.messages = append([]models.Message(nil), history...)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Reset discards the in-memory conversation and cancels any in-flight
// request.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.cancelCurrentLocked()
	c.conversationID = ""
	c.messages = nil
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// AppendSystem adds a system notice turn outside any exchange.
func (c *Controller) AppendSystem(content string, status models.Status) {
	c.mu.Lock()
	c.messages = append(c.messages, models.NewSystemMessage(content, status))
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Send starts one exchange. Empty payloads (after trimming) are a no-op.
// A previous in-flight request is cancelled first, so at most one request
// is ever outstanding per controller. Send returns immediately; progress
// is observed through the notifier.
func (c *Controller) Send(mode Mode, payload string) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return
	}

	c.mu.Lock()
	c.cancelCurrentLocked()

	var placeholder models.Message
	switch mode {
	case ModeAnalyze:
		initiation := models.NewUserMessage(payload)
		initiation.Status = models.StatusInfo
		c.messages = append(c.messages, initiation)
		placeholder = models.NewScanPlaceholder(payload)
	default:
		c.messages = append(c.messages, models.NewUserMessage(payload))
		placeholder = models.NewAssistantPlaceholder()
	}
	c.messages = append(c.messages, placeholder)

	ctx, cancel := context.WithCancel(context.Background())
	handle := &inflight{cancel: cancel, placeholderID: placeholder.ID}
	c.current = handle

	convID := c.conversationID
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)

	go c.run(ctx, handle, mode, payload, convID)
}

// Stop signals cancellation of the in-flight request. The placeholder is
// deterministically suffixed with the stop marker and reaches its terminal
// state; further chunks are discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	handle := c.current
	c.mu.Unlock()

	if handle == nil {
		return
	}

	handle.stopped.Store(true)
	handle.cancel()
	c.finalizeStopped(handle)
}

// run executes one exchange on its own goroutine.
func (c *Controller) run(ctx context.Context, handle *inflight, mode Mode, payload, convID string) {
	defer func() {
		handle.cancel()
		c.mu.Lock()
		// Clear only our own handle: a later Send may already have
		// installed a new one.
		if c.current == handle {
			c.current = nil
		}
		c.mu.Unlock()
	}()

	switch mode {
	case ModeAnalyze:
		c.runAnalyze(ctx, handle, payload)
	case ModeQuiz:
		c.runStream(ctx, handle, mode, payload, convID)
	default:
		c.runStream(ctx, handle, ModeGeneral, payload, convID)
	}
}

// runStream handles the general and quiz streaming protocols.
func (c *Controller) runStream(ctx context.Context, handle *inflight, mode Mode, payload, convID string) {
	// The controller's accumulator is authoritative; the message content
	// is replaced wholesale after every chunk.
	var accumulated strings.Builder

	onChunk := func(chunk string) {
		if handle.stopped.Load() || handle.superseded.Load() {
			return
		}
		accumulated.WriteString(chunk)
		text := accumulated.String()
		c.mutateMessage(handle, func(m *models.Message) {
			m.Content = text
		})
	}

	var envelope *api.StreamEnvelope
	var err error
	if mode == ModeQuiz {
		_, envelope, err = c.backend.QuizStream(ctx, payload, onChunk)
	} else {
		_, envelope, err = c.backend.ChatStream(ctx, payload, convID, onChunk)
	}

	if handle.stopped.Load() {
		c.finalizeStopped(handle)
		return
	}
	if handle.superseded.Load() {
		return
	}

	if err != nil {
		if ctx.Err() != nil {
			c.finalizeStopped(handle)
			return
		}
		c.mutateMessage(handle, func(m *models.Message) {
			m.Content = errTextNetwork
			m.Status = models.StatusDanger
			m.State = models.StateError
		})
		return
	}

	c.mutateMessage(handle, func(m *models.Message) {
		m.State = models.StateDone
	})

	// Registry bookkeeping is skipped entirely when the trailing record
	// could not be parsed; the displayed text is already correct.
	if envelope != nil {
		c.recordConversation(envelope.ConversationID, envelope.Title)
	}
}

// runAnalyze handles the single-body URL scan protocol, with simulated
// progress ticks while the request is outstanding.
func (c *Controller) runAnalyze(ctx context.Context, handle *inflight, target string) {
	progressDone := make(chan struct{})
	go c.tickScanProgress(ctx, handle, progressDone)

	result, err := c.backend.Analyze(ctx, target)
	close(progressDone)

	if handle.stopped.Load() {
		c.finalizeStopped(handle)
		return
	}
	if handle.superseded.Load() {
		return
	}

	if err != nil {
		if ctx.Err() != nil {
			c.finalizeStopped(handle)
			return
		}
		c.mutateMessage(handle, func(m *models.Message) {
			m.Content = errTextScan
			m.Status = models.StatusDanger
			m.State = models.StateError
			if m.Scan != nil {
				m.Scan.Scanning = false
			}
		})
		return
	}

	c.mutateMessage(handle, func(m *models.Message) {
		m.Content = fmt.Sprintf("Scan complete for %s. Review the findings below.", target)
		m.Status = models.StatusSuccess
		m.State = models.StateDone
		if m.Scan != nil {
			m.Scan.Scanning = false
			m.Scan.Progress = 100
			m.Scan.Results = result.ScannedOutput
		}
	})

	c.recordConversation(result.ConversationID, result.Title)
}

// tickScanProgress advances the placeholder's progress bar while the scan
// request is outstanding. It caps at 90; the real completion sets 100.
func (c *Controller) tickScanProgress(ctx context.Context, handle *inflight, done <-chan struct{}) {
	ticker := time.NewTicker(scanProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mutateMessage(handle, func(m *models.Message) {
				if m.Scan == nil || !m.Scan.Scanning {
					return
				}
				if m.Scan.Progress < 90 {
					m.Scan.Progress += 10
				}
			})
		}
	}
}

// finalizeStopped applies the deterministic stopped terminal state exactly
// once per handle.
func (c *Controller) finalizeStopped(handle *inflight) {
	if !handle.terminal.CompareAndSwap(false, true) {
		return
	}
	c.mutateMessageAlways(handle, func(m *models.Message) {
		m.Content += StopMarker
		m.State = models.StateStopped
		if m.Scan != nil {
			m.Scan.Scanning = false
		}
	})
}

// recordConversation applies the completion bookkeeping: active
// conversation id, selected chat, and a new history entry. Server-absent
// fields get defaults.
func (c *Controller) recordConversation(id, title string) {
	if id == "" {
		id = uuid.NewString()
	}
	if title == "" {
		title = models.DefaultTitle
	}

	c.mu.Lock()
	c.conversationID = id
	c.mu.Unlock()

	if c.notifier != nil {
		c.notifier.ConversationRecorded(models.ConversationSummary{
			ID:        id,
			Title:     title,
			UpdatedAt: time.Now(),
		})
	}
}

// mutateMessage applies fn to the handle's placeholder unless the turn has
// already reached a terminal state through Stop.
func (c *Controller) mutateMessage(handle *inflight, fn func(*models.Message)) {
	if handle.terminal.Load() {
		return
	}
	c.mutateMessageAlways(handle, fn)
}

// mutateMessageAlways applies fn to the handle's placeholder by identity
// match, then publishes a fresh snapshot.
func (c *Controller) mutateMessageAlways(handle *inflight, fn func(*models.Message)) {
	c.mu.Lock()
	for i := range c.messages {
		if c.messages[i].ID == handle.placeholderID {
			// A terminal turn receives no further mutation.
			if c.messages[i].State == models.StateStreaming {
				fn(&c.messages[i])
			}
			break
		}
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// cancelCurrentLocked supersedes and cancels the in-flight request, if
// any, before a new one starts. The superseded placeholder reaches a
// stopped terminal state unless it was already terminal.
func (c *Controller) cancelCurrentLocked() {
	handle := c.current
	if handle == nil {
		return
	}
	c.current = nil
	handle.superseded.Store(true)
	handle.cancel()

	if handle.terminal.CompareAndSwap(false, true) {
		for i := range c.messages {
			if c.messages[i].ID == handle.placeholderID && c.messages[i].State == models.StateStreaming {
				c.messages[i].Content += StopMarker
				c.messages[i].State = models.StateStopped
				if c.messages[i].Scan != nil {
					c.messages[i].Scan.Scanning = false
				}
				break
			}
		}
	}
}

// snapshotLocked copies the message list for observers.
func (c *Controller) snapshotLocked() []models.Message {
	return append([]models.Message(nil), c.messages...)
}

func (c *Controller) notify(snapshot []models.Message) {
	if c.notifier != nil {
		c.notifier.MessagesChanged(snapshot)
	}
}
