package suggest

import (
	"reflect"
	"strings"
	"testing"
)

func TestFilter(t *testing.T) {
	candidates := []string{
		"How do I create a strong password?",
		"What is phishing and how do I spot it?",
		"How do password managers work?",
		"What is ransomware?",
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "substring match",
			input: "password",
			want:  []string{"How do I create a strong password?", "How do password managers work?"},
		},
		{
			name:  "case insensitive",
			input: "PHISHING",
			want:  []string{"What is phishing and how do I spot it?"},
		},
		{
			name:  "no match",
			input: "firewall",
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single character too short",
			input: "p",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  nil,
		},
		{
			name:  "trims before matching",
			input: "  ransom  ",
			want:  []string{"What is ransomware?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.input, candidates)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterCapsResults(t *testing.T) {
	var candidates []string
	for i := 0; i < MaxSuggestions+3; i++ {
		candidates = append(candidates, "security question "+strings.Repeat("x", i+1))
	}

	got := Filter("security", candidates)
	if len(got) != MaxSuggestions {
		t.Errorf("Filter returned %d results, want %d", len(got), MaxSuggestions)
	}
	// Earlier candidates win when the cap is hit.
	if got[0] != candidates[0] {
		t.Errorf("First result = %q, want %q", got[0], candidates[0])
	}
}

func TestFilterDefaultCandidates(t *testing.T) {
	got := Filter("password", Candidates)
	if len(got) == 0 {
		t.Fatal("Default candidates should match 'password'")
	}
	for _, s := range got {
		if !strings.Contains(strings.ToLower(s), "password") {
			t.Errorf("Result %q does not contain the needle", s)
		}
	}
}
