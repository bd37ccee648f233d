package api

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/aegislabs/aegis/internal/errors"
)

// stubDoer scripts responses for the transport layer.
type stubDoer struct {
	fn       func(req *http.Request) (*http.Response, error)
	requests []*http.Request
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.requests = append(s.requests, req)
	return s.fn(req)
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T, doer *stubDoer) *Client {
	t.Helper()
	client, err := NewClient("http://localhost:8000", withDoer(doer))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestParseStreamEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		wantID string
		isNil  bool
	}{
		{
			name:   "whole buffer is the record",
			buffer: `{"conversation_id":"c1","title":"Passwords"}`,
			wantID: "c1",
		},
		{
			name:   "record on trailing line",
			buffer: "Long answer text.\nMore text.\n{\"conversation_id\":\"c2\",\"title\":\"T\"}",
			wantID: "c2",
		},
		{
			name:   "plain text only",
			buffer: "Just an answer with no record.",
			isNil:  true,
		},
		{
			name:   "trailing json without conversation_id",
			buffer: "answer\n{\"title\":\"T\"}",
			isNil:  true,
		},
		{
			name:   "empty buffer",
			buffer: "",
			isNil:  true,
		},
		{
			name:   "whitespace buffer",
			buffer: "  \n  ",
			isNil:  true,
		},
		{
			name:   "record not on last line is ignored",
			buffer: "{\"conversation_id\":\"c3\"}\ntrailing prose",
			isNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStreamEnvelope(tt.buffer)
			if tt.isNil {
				if got != nil {
					t.Errorf("ParseStreamEnvelope = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ParseStreamEnvelope = nil, want envelope")
			}
			if got.ConversationID != tt.wantID {
				t.Errorf("ConversationID = %q, want %q", got.ConversationID, tt.wantID)
			}
		})
	}
}

func TestChatStream(t *testing.T) {
	body := "The answer.\n{\"conversation_id\":\"c1\",\"title\":\"Security\"}"
	doer := &stubDoer{fn: func(req *http.Request) (*http.Response, error) {
		return textResponse(200, body), nil
	}}
	client := newTestClient(t, doer)

	var chunks []string
	text, envelope, err := client.ChatStream(context.Background(), "hi", "prev-conv", func(chunk string) {
		chunks = append(chunks, chunk)
	})
	if err != nil {
		t.Fatalf("ChatStream failed: %v", err)
	}

	if text != body {
		t.Errorf("Accumulated text = %q", text)
	}
	if strings.Join(chunks, "") != body {
		t.Errorf("Chunks do not reassemble the body: %v", chunks)
	}
	if envelope == nil || envelope.ConversationID != "c1" || envelope.Title != "Security" {
		t.Errorf("Envelope = %+v", envelope)
	}

	req := doer.requests[0]
	if req.URL.Path != PathChatNew {
		t.Errorf("Path = %s, want %s", req.URL.Path, PathChatNew)
	}
	if req.Method != http.MethodPost {
		t.Errorf("Method = %s, want POST", req.Method)
	}
}

func TestChatStreamHTTPError(t *testing.T) {
	doer := &stubDoer{fn: func(req *http.Request) (*http.Response, error) {
		return textResponse(503, "backend down"), nil
	}}
	client := newTestClient(t, doer)

	_, _, err := client.ChatStream(context.Background(), "hi", "", nil)
	if err == nil {
		t.Fatal("Expected error for 503")
	}
	if apierrors.HTTPStatus(err) != 503 {
		t.Errorf("HTTPStatus = %d, want 503", apierrors.HTTPStatus(err))
	}
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) || !strings.Contains(apiErr.Body, "backend down") {
		t.Errorf("Error body not captured: %v", err)
	}
}

func TestChatStreamTransportError(t *testing.T) {
	doer := &stubDoer{fn: func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}}
	client := newTestClient(t, doer)

	_, _, err := client.ChatStream(context.Background(), "hi", "", nil)
	if !apierrors.IsNetworkError(err) {
		t.Errorf("Expected network error, got %v", err)
	}
}

func TestQuizStreamPath(t *testing.T) {
	doer := &stubDoer{fn: func(req *http.Request) (*http.Response, error) {
		return textResponse(200, "quiz text"), nil
	}}
	client := newTestClient(t, doer)

	if _, _, err := client.QuizStream(context.Background(), "quiz me", nil); err != nil {
		t.Fatalf("QuizStream failed: %v", err)
	}
	if doer.requests[0].URL.Path != PathQuizGenerate {
		t.Errorf("Path = %s, want %s", doer.requests[0].URL.Path, PathQuizGenerate)
	}
}

func TestStreamContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doer := &stubDoer{fn: func(req *http.Request) (*http.Response, error) {
		return textResponse(200, "never read"), nil
	}}
	client := newTestClient(t, doer)

	_, _, err := client.ChatStream(ctx, "hi", "", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
