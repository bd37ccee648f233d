package history

import (
	"strings"
	"testing"
	"time"

	"github.com/aegislabs/aegis/internal/models"
)

func seededResolver(t *testing.T) *Resolver {
	t.Helper()
	store := newTestStore(t)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	seed := []models.ConversationSummary{
		{ID: "conv-oldest", Title: "Router hardening", UpdatedAt: base},
		{ID: "conv-middle", Title: "Phishing basics", UpdatedAt: base.Add(time.Hour)},
		{ID: "conv-newest", Title: "Phishing drill results", UpdatedAt: base.Add(2 * time.Hour)},
	}
	for _, summary := range seed {
		if err := store.Put(summary, nil); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	return NewResolver(store)
}

func TestResolve(t *testing.T) {
	r := seededResolver(t)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr string
	}{
		{name: "at last", ref: "@last", want: "conv-newest"},
		{name: "at first", ref: "@first", want: "conv-oldest"},
		{name: "index newest", ref: "1", want: "conv-newest"},
		{name: "index oldest", ref: "3", want: "conv-oldest"},
		{name: "index zero", ref: "0", wantErr: "out of range"},
		{name: "index too large", ref: "4", wantErr: "out of range"},
		{name: "exact id", ref: "conv-middle", want: "conv-middle"},
		{name: "unique title substring", ref: "router", want: "conv-oldest"},
		{name: "case insensitive title", ref: "DRILL", want: "conv-newest"},
		{name: "ambiguous title", ref: "phishing", wantErr: "multiple"},
		{name: "no match", ref: "malware", wantErr: "no conversation matches"},
		{name: "empty", ref: "", wantErr: "empty reference"},
		{name: "whitespace", ref: "   ", wantErr: "empty reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.ref)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want containing %q", tt.ref, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolveEmptyStore(t *testing.T) {
	r := NewResolver(newTestStore(t))
	if _, err := r.Resolve("@last"); err == nil || !strings.Contains(err.Error(), "no conversations") {
		t.Errorf("Resolve on empty store = %v, want no-conversations error", err)
	}
}

func TestResolveIDWinsOverTitle(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	// An entry whose title contains another entry's ID must not shadow it.
	if err := store.Put(models.ConversationSummary{ID: "breach", Title: "Unrelated", UpdatedAt: now}, nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(models.ConversationSummary{ID: "conv-2", Title: "breach response", UpdatedAt: now.Add(time.Minute)}, nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := NewResolver(store).Resolve("breach")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "breach" {
		t.Errorf("Resolve = %s, want exact-ID match", got)
	}
}
