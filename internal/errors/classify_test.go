package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "typed auth error", err: NewAuthError("expired"), want: true},
		{name: "wrapped auth error", err: fmt.Errorf("request: %w", NewAuthError("")), want: true},
		{name: "401 api error", err: NewAPIError(401, "/users/me", "unauthorized"), want: true},
		{name: "403 api error", err: NewAPIError(403, "/users/me", "forbidden"), want: true},
		{name: "500 api error", err: NewAPIError(500, "/users/me", "boom"), want: false},
		{name: "no token sentinel", err: fmt.Errorf("load: %w", ErrNoToken), want: true},
		{name: "token expired sentinel", err: ErrTokenExpired, want: true},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "typed network error", err: NewNetworkError("stream", "/chat/new", errors.New("refused")), want: true},
		{name: "wrapped network error", err: fmt.Errorf("send: %w", NewNetworkError("post", "", errors.New("reset"))), want: true},
		{name: "api error", err: NewAPIError(500, "/chat/new", "boom"), want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(NewValidationError("question", "empty")) {
		t.Error("Typed validation error not recognized")
	}
	if IsValidationError(errors.New("boom")) {
		t.Error("Plain error misclassified as validation")
	}
}

func TestIsParseError(t *testing.T) {
	if !IsParseError(NewParseError("bad json", "conversation_id")) {
		t.Error("Typed parse error not recognized")
	}
	if !errors.Is(NewParseError("bad json", ""), ErrInvalidResponse) {
		t.Error("Parse error should match ErrInvalidResponse")
	}
}

func TestIsCancellation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "context canceled", err: context.Canceled, want: true},
		{name: "wrapped cancel", err: fmt.Errorf("stream: %w", context.Canceled), want: true},
		{name: "stopped sentinel", err: ErrStopped, want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCancellation(tt.err); got != tt.want {
				t.Errorf("IsCancellation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	if got := HTTPStatus(NewAPIError(422, "/analyze/new", "bad url")); got != 422 {
		t.Errorf("HTTPStatus = %d, want 422", got)
	}
	if got := HTTPStatus(fmt.Errorf("wrapped: %w", NewAPIError(500, "/x", "boom"))); got != 500 {
		t.Errorf("HTTPStatus wrapped = %d, want 500", got)
	}
	if got := HTTPStatus(errors.New("boom")); got != 0 {
		t.Errorf("HTTPStatus plain = %d, want 0", got)
	}
}

func TestAuthErrorMessage(t *testing.T) {
	if got := NewAuthError("").Error(); got != "authentication failed: token may have expired" {
		t.Errorf("Default auth message = %q", got)
	}
	if got := NewAuthError("bad password").Error(); got != "authentication failed: bad password" {
		t.Errorf("Auth message = %q", got)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	withStatus := NewAPIError(404, "/conversations/get", "not found").Error()
	if withStatus != "API error [404] at /conversations/get: not found" {
		t.Errorf("APIError message = %q", withStatus)
	}
	withoutStatus := (&APIError{Endpoint: "/x", Message: "boom"}).Error()
	if withoutStatus != "API error at /x: boom" {
		t.Errorf("APIError without status = %q", withoutStatus)
	}
}
