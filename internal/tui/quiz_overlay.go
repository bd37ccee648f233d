package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegislabs/aegis/internal/models"
	"github.com/aegislabs/aegis/internal/quiz"
)

// quizScreen is the overlay's own presentation position. The session flips
// back to selecting the moment a round's summary is emitted, so the summary
// screen is tracked here rather than read off the session phase.
type quizScreen int

const (
	quizScreenTopic quizScreen = iota
	quizScreenDifficulty
	quizScreenQuestion
	quizScreenSummary
)

// quizScreen derives the current overlay screen.
func (m Model) quizScreen() quizScreen {
	switch {
	case m.quizSummary != nil:
		return quizScreenSummary
	case m.quizSession.Phase() == quiz.PhaseInProgress:
		return quizScreenQuestion
	case m.quizSession.Topic() == "":
		return quizScreenTopic
	default:
		return quizScreenDifficulty
	}
}

// updateQuiz handles input while the quiz overlay is open.
func (m Model) updateQuiz(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.quizSession.Abort() {
				m.closeQuiz("Quiz aborted.")
			} else {
				m.closeQuiz("")
			}
			return m, nil

		case "up", "k":
			if n := m.quizOptionCount(); n > 0 {
				m.quizCursor--
				if m.quizCursor < 0 {
					m.quizCursor = n - 1
				}
			}

		case "down", "j":
			if n := m.quizOptionCount(); n > 0 {
				m.quizCursor++
				if m.quizCursor >= n {
					m.quizCursor = 0
				}
			}

		case "enter":
			return m.quizConfirm()
		}
	}

	return m, nil
}

// quizOptionCount returns how many choices the current screen offers.
func (m Model) quizOptionCount() int {
	switch m.quizScreen() {
	case quizScreenTopic:
		return len(quiz.Topics())
	case quizScreenDifficulty:
		return len(quiz.Difficulties())
	case quizScreenQuestion:
		q, _, _ := m.quizSession.Current()
		return len(q.Options)
	default:
		return 2 // play again / back to chat
	}
}

// quizConfirm applies the highlighted choice for the current screen.
func (m Model) quizConfirm() (tea.Model, tea.Cmd) {
	switch m.quizScreen() {
	case quizScreenTopic:
		topics := quiz.Topics()
		if m.quizCursor < len(topics) {
			m.quizSession.SelectTopic(topics[m.quizCursor])
		}
		m.quizCursor = 0
		return m, nil

	case quizScreenDifficulty:
		diffs := quiz.Difficulties()
		if m.quizCursor < len(diffs) {
			m.quizSession.SelectDifficulty(diffs[m.quizCursor])
		}
		if err := m.quizSession.Start(); err != nil {
			m.err = err
			m.closeQuiz("")
			return m, nil
		}
		m.quizCursor = 0
		m.quizFeedback = ""
		return m, nil

	case quizScreenQuestion:
		q, _, _ := m.quizSession.Current()
		correct, summary := m.quizSession.Answer(m.quizCursor)
		if correct {
			m.quizFeedback = statusSuccessStyle.Render("Correct!")
		} else {
			m.quizFeedback = statusDangerStyle.Render(
				fmt.Sprintf("Not quite. %s", q.Explanation))
		}
		m.quizSummary = summary
		m.quizCursor = 0
		return m, nil

	default: // summary
		if m.quizCursor == 0 {
			// Play again: back to topic selection, cumulative score kept.
			m.quizSession.SelectTopic("")
			m.quizSummary = nil
			m.quizFeedback = ""
			m.quizCursor = 0
			return m, nil
		}
		m.closeQuiz(summaryLine(m.quizSummary))
		return m, nil
	}
}

// closeQuiz leaves the overlay and posts a notice into the chat.
func (m *Model) closeQuiz(notice string) {
	m.quizActive = false
	m.quizSession = nil
	m.quizFeedback = ""
	m.quizSummary = nil
	m.quizCursor = 0
	if notice != "" {
		m.controller.AppendSystem(notice, models.StatusInfo)
	}
}

// summaryLine formats a completed round for the chat transcript.
func summaryLine(s *quiz.Summary) string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("Quiz complete: %d/%d on %s (%s), %d%% - %s.",
		s.Correct, s.Total, s.Topic, s.Difficulty, s.Percent, s.Band)
}

// renderQuiz renders the quiz overlay.
func (m Model) renderQuiz() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	content.WriteString(menuTitleStyle.Render("Security Quiz"))
	if correct, asked := m.quizSession.CumulativeScore(); asked > 0 {
		content.WriteString(hintStyle.Render(
			fmt.Sprintf("  (session: %d/%d)", correct, asked)))
	}
	content.WriteString("\n\n")

	switch m.quizScreen() {
	case quizScreenTopic:
		content.WriteString(menuSectionTitleStyle.Render("Pick a topic"))
		content.WriteString("\n")
		for i, topic := range quiz.Topics() {
			content.WriteString(m.quizItem(i, topic))
		}

	case quizScreenDifficulty:
		content.WriteString(menuSectionTitleStyle.Render(
			fmt.Sprintf("Topic: %s - pick a difficulty", m.quizSession.Topic())))
		content.WriteString("\n")
		for i, d := range quiz.Difficulties() {
			content.WriteString(m.quizItem(i, string(d)))
		}

	case quizScreenQuestion:
		q, pos, total := m.quizSession.Current()
		content.WriteString(menuSectionTitleStyle.Render(
			fmt.Sprintf("Question %d of %d", pos, total)))
		content.WriteString("\n")
		content.WriteString(menuItemStyle.Render(q.Prompt))
		content.WriteString("\n\n")
		for i, opt := range q.Options {
			content.WriteString(m.quizItem(i, opt))
		}
		if m.quizFeedback != "" {
			content.WriteString("\n")
			content.WriteString(menuFeedbackStyle.Render(m.quizFeedback))
			content.WriteString("\n")
		}

	default: // summary
		if s := m.quizSummary; s != nil {
			content.WriteString(menuSectionTitleStyle.Render("Round complete"))
			content.WriteString("\n")
			content.WriteString(menuItemStyle.Render(
				fmt.Sprintf("Score: %d/%d (%d%%)", s.Correct, s.Total, s.Percent)))
			content.WriteString("\n")
			content.WriteString(menuItemStyle.Render(
				fmt.Sprintf("Verdict: %s", s.Band)))
			content.WriteString("\n\n")
		}
		for i, opt := range []string{"Play again", "Back to chat"} {
			content.WriteString(m.quizItem(i, opt))
		}
	}

	content.WriteString("\n")
	shortcuts := []string{
		statusKeyStyle.Render("up/down") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Select"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Leave quiz"),
	}
	content.WriteString(strings.Join(shortcuts, "  |  "))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(content.String())
}

// quizItem renders one selectable line of the overlay.
func (m Model) quizItem(index int, label string) string {
	cursor := "  "
	style := menuItemStyle
	if index == m.quizCursor {
		cursor = menuCursorStyle.Render("> ")
		style = menuSelectedStyle
	}
	return fmt.Sprintf("%s%s\n", cursor, style.Render(label))
}
