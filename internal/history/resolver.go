package history

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver resolves user-friendly references to conversation IDs.
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver over the local cache.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve converts a user-friendly reference to a conversation ID
//
// Supported references:
//   - "@last" - most recently updated conversation
//   - "@first" - oldest conversation
//   - "1", "2", "3" - by index into the list (1-based, newest first)
//   - "substring" - match on title (error if multiple matches)
//   - anything else - treated as a direct ID
func (r *Resolver) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)

	if ref == "" {
		return "", fmt.Errorf("empty reference")
	}

	entries, err := r.store.List()
	if err != nil {
		return "", fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(entries) == 0 {
		return "", fmt.Errorf("no conversations found")
	}

	switch ref {
	case "@last":
		return entries[0].Summary.ID, nil
	case "@first":
		return entries[len(entries)-1].Summary.ID, nil
	}

	if idx, err := strconv.Atoi(ref); err == nil {
		if idx < 1 || idx > len(entries) {
			return "", fmt.Errorf("index %d out of range (1-%d)", idx, len(entries))
		}
		return entries[idx-1].Summary.ID, nil
	}

	// Exact ID wins over title matching.
	for _, entry := range entries {
		if entry.Summary.ID == ref {
			return entry.Summary.ID, nil
		}
	}

	needle := strings.ToLower(ref)
	var matches []*Entry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Summary.Title), needle) {
			matches = append(matches, entry)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no conversation matches %q", ref)
	case 1:
		return matches[0].Summary.ID, nil
	default:
		var titles []string
		for _, m := range matches {
			titles = append(titles, m.Summary.Title)
		}
		return "", fmt.Errorf("%q matches multiple conversations: %s", ref, strings.Join(titles, ", "))
	}
}
