package api

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/aegislabs/aegis/internal/errors"
)

// streamReadSize is the buffer size for one streamed read. Cancellation is
// observed between reads, so it also bounds cancellation latency.
const streamReadSize = 4 * 1024

// ChunkFunc receives each decoded text chunk as it arrives.
type ChunkFunc func(chunk string)

// StreamEnvelope is the bookkeeping record the backend appends after the
// streamed answer text: which conversation the exchange was stored under.
type StreamEnvelope struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	UserID         string `json:"user_id"`
}

// chatRequest is the body for POST /chat/new.
type chatRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// quizRequest is the body for POST /quiz/generate.
type quizRequest struct {
	Question string `json:"question"`
}

// ChatStream sends a general chat question and streams the answer. fn is
// invoked once per received chunk. The returned string is the full
// accumulated response text; the envelope is nil when the trailing
// bookkeeping record could not be recovered from the buffer.
func (c *Client) ChatStream(ctx context.Context, question, conversationID string, fn ChunkFunc) (string, *StreamEnvelope, error) {
	body, err := json.Marshal(chatRequest{Question: question, ConversationID: conversationID})
	if err != nil {
		return "", nil, err
	}
	return c.stream(ctx, PathChatNew, body, fn)
}

// QuizStream requests an AI-generated quiz over the same streaming
// protocol as general chat.
func (c *Client) QuizStream(ctx context.Context, question string, fn ChunkFunc) (string, *StreamEnvelope, error) {
	body, err := json.Marshal(quizRequest{Question: question})
	if err != nil {
		return "", nil, err
	}
	return c.stream(ctx, PathQuizGenerate, body, fn)
}

// stream performs a streaming POST and reads the body incrementally until
// EOF or context cancellation. Whatever text accumulated before an error
// is still returned.
func (c *Client) stream(ctx context.Context, path string, body []byte, fn ChunkFunc) (string, *StreamEnvelope, error) {
	endpoint := c.endpoint(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	c.log.WithField("endpoint", endpoint).Debug("starting stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, apierrors.NewNetworkError("stream", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "stream request failed", readErrorBody(resp.Body))
	}

	var accumulated strings.Builder
	buf := make([]byte, streamReadSize)
	for {
		select {
		case <-ctx.Done():
			return accumulated.String(), nil, ctx.Err()
		default:
		}

		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			accumulated.WriteString(chunk)
			if fn != nil {
				fn(chunk)
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return accumulated.String(), nil, apierrors.NewNetworkError("stream read", endpoint, readErr)
		}
	}

	text := accumulated.String()
	c.log.WithField("bytes", len(text)).Debug("stream complete")

	return text, ParseStreamEnvelope(text), nil
}

// ParseStreamEnvelope recovers the trailing conversation_id/title record
// from an accumulated stream buffer. The backend's framing is loose: the
// whole buffer may be a JSON object, or the record may sit on its own
// trailing line after the answer text. Returns nil when no record is
// found; callers then skip registry bookkeeping.
func ParseStreamEnvelope(buffer string) *StreamEnvelope {
	trimmed := strings.TrimSpace(buffer)
	if trimmed == "" {
		return nil
	}

	if env := envelopeFromJSON(trimmed); env != nil {
		return env
	}

	// Scan lines from the end, the way a trailing record would appear
	// after multi-line answer text.
	lines := strings.Split(trimmed, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if env := envelopeFromJSON(line); env != nil {
			return env
		}
		break
	}

	return nil
}

func envelopeFromJSON(s string) *StreamEnvelope {
	if !gjson.Valid(s) {
		return nil
	}
	parsed := gjson.Parse(s)
	id := parsed.Get("conversation_id")
	if !id.Exists() {
		return nil
	}
	return &StreamEnvelope{
		ConversationID: id.String(),
		Title:          parsed.Get("title").String(),
		UserID:         parsed.Get("user_id").String(),
	}
}

// readErrorBody reads at most 4KB of an error response for diagnostics.
func readErrorBody(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, _ := io.ReadAll(io.LimitReader(body, 4096))
	return string(data)
}
