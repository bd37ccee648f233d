// Package suggest filters a static candidate list of security questions
// against partial user input.
package suggest

import "strings"

// MaxSuggestions bounds how many candidates are returned.
const MaxSuggestions = 5

// Candidates is the default prompt bank shown in the chat input.
var Candidates = []string{
	"How do I create a strong password?",
	"What is phishing and how do I spot it?",
	"Is public Wi-Fi safe to use?",
	"What is two-factor authentication?",
	"How does a VPN protect my privacy?",
	"What should I do after a data breach?",
	"How can I tell if a link is malicious?",
	"What is ransomware?",
	"How do I secure my home router?",
	"What data do websites collect about me?",
	"How do password managers work?",
	"What is social engineering?",
	"How do I browse the web privately?",
	"What permissions should I give mobile apps?",
	"How do I recognize a scam email?",
}

// Filter returns up to MaxSuggestions candidates containing input as a
// case-insensitive substring, preserving candidate order. Inputs shorter
// than two characters yield nothing.
func Filter(input string, candidates []string) []string {
	input = strings.TrimSpace(input)
	if len(input) < 2 {
		return nil
	}

	needle := strings.ToLower(input)
	var matches []string
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), needle) {
			matches = append(matches, candidate)
			if len(matches) == MaxSuggestions {
				break
			}
		}
	}

	return matches
}
