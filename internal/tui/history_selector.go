package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegislabs/aegis/internal/history"
)

// EntryLister is the slice of the history store the selector needs.
type EntryLister interface {
	List() ([]*history.Entry, error)
}

// historyLoadedMsg is sent when cached conversations are loaded
type historyLoadedMsg struct {
	entries []*history.Entry
	err     error
}

// HistorySelectorModel represents the history selector TUI state
type HistorySelectorModel struct {
	store EntryLister

	// Data
	entries []*history.Entry

	// Navigation
	cursor int

	// State
	loading   bool
	err       error
	confirmed bool

	// Result
	selected *history.Entry // nil means new conversation
	isNew    bool

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewHistorySelectorModel creates a new history selector model
func NewHistorySelectorModel(store EntryLister) HistorySelectorModel {
	return HistorySelectorModel{
		store:   store,
		loading: true,
		cursor:  0, // Start at "New Conversation"
	}
}

// Init initializes the model and starts loading conversations
func (m HistorySelectorModel) Init() tea.Cmd {
	return m.loadEntries()
}

// loadEntries returns a command that loads conversations from the store
func (m HistorySelectorModel) loadEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.store.List()
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{entries: entries}
	}
}

// Update handles messages and updates the model
func (m HistorySelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case historyLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.entries = msg.entries
		}

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc", "q":
			return m, tea.Quit

		case "up", "k":
			m.cursor--
			if m.cursor < 0 {
				// Wrap to last item (+1 for "New Conversation" option)
				m.cursor = len(m.entries)
			}

		case "down", "j":
			m.cursor++
			if m.cursor > len(m.entries) {
				m.cursor = 0
			}

		case "enter":
			m.confirmed = true
			if m.cursor == 0 {
				m.isNew = true
				m.selected = nil
			} else {
				m.isNew = false
				m.selected = m.entries[m.cursor-1]
			}
			return m, tea.Quit

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = len(m.entries)
		}
	}

	return m, nil
}

// View renders the TUI
func (m HistorySelectorModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.loading {
		return loadingStyle.Render("  Loading conversations...")
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections = append(sections, m.renderHeader(contentWidth))
	sections = append(sections, m.renderList(contentWidth))
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the header panel
func (m HistorySelectorModel) renderHeader(width int) string {
	title := menuTitleStyle.Render("Select Conversation")
	subtitle := hintStyle.Render("  Aegis")
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, title, subtitle)
	return menuHeaderStyle.Width(width).Render(headerContent)
}

// renderList renders the conversation list
func (m HistorySelectorModel) renderList(width int) string {
	title := menuSectionTitleStyle.Render("Conversations")

	var items []string

	// "New Conversation" option (always first)
	newItem := m.renderItem(0, "+ New Conversation", time.Time{}, true, width-6)
	items = append(items, newItem)

	if len(m.entries) == 0 {
		items = append(items, hintStyle.Render("  No cached conversations"))
	} else {
		availableHeight := m.height - 12
		maxItems := availableHeight / 2
		if maxItems < 5 {
			maxItems = 5
		}

		scrollOffset := 0
		if m.cursor >= maxItems {
			scrollOffset = m.cursor - maxItems + 1
		}

		endIdx := scrollOffset + maxItems
		if endIdx > len(m.entries)+1 {
			endIdx = len(m.entries) + 1
		}

		for i := scrollOffset; i < endIdx; i++ {
			if i == 0 {
				// Already rendered "New Conversation"
				continue
			}
			entry := m.entries[i-1]
			item := m.renderItem(i, entry.Summary.Title, entry.Summary.UpdatedAt, false, width-6)
			items = append(items, item)
		}

		if scrollOffset > 0 {
			items = append([]string{hintStyle.Render("  ...")}, items...)
		}
		if endIdx < len(m.entries)+1 {
			items = append(items, hintStyle.Render("  ..."))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, items...)...)
	return menuPanelStyle.Width(width).Render(content)
}

// renderItem renders a single conversation item
func (m HistorySelectorModel) renderItem(index int, title string, updatedAt time.Time, isNew bool, width int) string {
	cursor := "  "
	style := menuItemStyle
	if index == m.cursor {
		cursor = menuCursorStyle.Render("> ")
		style = menuSelectedStyle
	}

	titleText := style.Render(title)

	if isNew {
		return fmt.Sprintf("%s%s", cursor, titleText)
	}

	timeStr := ""
	if !updatedAt.IsZero() {
		diff := time.Since(updatedAt)

		switch {
		case diff < time.Hour:
			timeStr = fmt.Sprintf("%dm ago", int(diff.Minutes()))
		case diff < 24*time.Hour:
			timeStr = fmt.Sprintf("%dh ago", int(diff.Hours()))
		case diff < 7*24*time.Hour:
			timeStr = fmt.Sprintf("%dd ago", int(diff.Hours()/24))
		default:
			timeStr = updatedAt.Format("Jan 2")
		}
	}

	timeInfo := ""
	if timeStr != "" {
		timeInfo = menuValueStyle.Render(fmt.Sprintf(" - %s", timeStr))
	}

	return fmt.Sprintf("%s%s%s", cursor, titleText, timeInfo)
}

// renderStatusBar renders the bottom status bar
func (m HistorySelectorModel) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"up/down", "Navigate"},
		{"Enter", "Select"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  |  "))
	return menuStatusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// Result returns the selected entry (nil for new) and whether confirmed
func (m HistorySelectorModel) Result() (*history.Entry, bool, bool) {
	return m.selected, m.isNew, m.confirmed
}

// HistorySelectorResult contains the result of running the history selector
type HistorySelectorResult struct {
	Entry     *history.Entry // nil for new conversation
	IsNew     bool           // true if user selected "New Conversation"
	Confirmed bool           // true if user confirmed selection
}

// RunHistorySelector starts the history selector TUI and returns the result
func RunHistorySelector(store EntryLister) (HistorySelectorResult, error) {
	m := NewHistorySelectorModel(store)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return HistorySelectorResult{}, err
	}

	if hm, ok := finalModel.(HistorySelectorModel); ok {
		entry, isNew, confirmed := hm.Result()
		return HistorySelectorResult{
			Entry:     entry,
			IsNew:     isNew,
			Confirmed: confirmed,
		}, nil
	}

	return HistorySelectorResult{}, nil
}
