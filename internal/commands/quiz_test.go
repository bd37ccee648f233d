package commands

import (
	"bufio"
	"strings"
	"testing"
)

func TestPickOption(t *testing.T) {
	options := []string{"passwords", "phishing", "privacy"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "first option", input: "1\n", want: "passwords"},
		{name: "last option", input: "3\n", want: "privacy"},
		{name: "retry after invalid", input: "0\n9\nabc\n2\n", want: "phishing"},
		{name: "empty line cancels", input: "\n", want: ""},
		{name: "q cancels", input: "q\n", want: ""},
		{name: "eof cancels", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := bufio.NewReader(strings.NewReader(tt.input))
			got, err := pickOption(reader, "Pick a topic", options)
			if err != nil {
				t.Fatalf("pickOption returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("pickOption = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadChoice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
		want  int
	}{
		{name: "valid choice", input: "2\n", count: 4, want: 1},
		{name: "first choice", input: "1\n", count: 4, want: 0},
		{name: "retry out of range", input: "5\n3\n", count: 4, want: 2},
		{name: "quit", input: "q\n", count: 4, want: -1},
		{name: "quit long form", input: "quit\n", count: 4, want: -1},
		{name: "eof quits", input: "", count: 4, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := bufio.NewReader(strings.NewReader(tt.input))
			got, err := readChoice(reader, tt.count)
			if err != nil {
				t.Fatalf("readChoice returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("readChoice = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuizCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"topic", "difficulty"} {
		if quizCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Flag %s not found on quiz command", flagName)
		}
	}
}
