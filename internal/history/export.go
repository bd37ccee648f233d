package history

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ExportToMarkdown renders a cached conversation as a Markdown document.
func (s *Store) ExportToMarkdown(id string) (string, error) {
	entry, err := s.Get(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", entry.Summary.Title))
	sb.WriteString(fmt.Sprintf("*Updated: %s*\n\n", entry.Summary.UpdatedAt.Format("2006-01-02 15:04")))

	for _, msg := range entry.Messages {
		switch msg.Role {
		case "user":
			sb.WriteString("## You\n\n")
		default:
			sb.WriteString("## Aegis\n\n")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}

	return sb.String(), nil
}

// ExportToJSON renders a cached conversation as pretty-printed JSON.
func (s *Store) ExportToJSON(id string) (string, error) {
	entry, err := s.Get(id)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal conversation: %w", err)
	}

	return string(data), nil
}

// Export renders a cached conversation in the requested format.
func (s *Store) Export(id string, format ExportFormat) (string, error) {
	switch format {
	case ExportFormatJSON:
		return s.ExportToJSON(id)
	case ExportFormatMarkdown, "":
		return s.ExportToMarkdown(id)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}
