package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aegislabs/aegis/internal/config"
	"github.com/aegislabs/aegis/internal/render"
)

// configView represents the current view in the settings menu
type configView int

const (
	viewMain configView = iota
	viewStyleSelect    // Markdown style
	viewTUIThemeSelect // TUI color theme
)

// Menu item indices for main view
const (
	menuVerbose = iota
	menuCopyToClipboard
	menuEmoji
	menuStyle    // Markdown style
	menuTUITheme // TUI color theme
	menuExit
	menuItemCount
)

// markdownStyles lists the glamour styles offered in the picker.
var markdownStyles = []string{"dark", "light", "dracula", "notty", "ascii", "pink"}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the settings TUI state
type ConfigModel struct {
	config    config.Config
	configDir string
	loggedIn  bool

	// Navigation
	view           configView
	cursor         int
	styleCursor    int
	tuiThemeCursor int

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a new settings TUI model
func NewConfigModel() ConfigModel {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	configDir, _ := config.GetConfigDir()

	loggedIn := false
	if token, err := config.LoadToken(); err == nil && !token.Empty() {
		loggedIn = true
	}

	styleCursor := 0
	currentStyle := cfg.Markdown.Style
	if currentStyle == "" {
		currentStyle = "dark"
	}
	for i, s := range markdownStyles {
		if s == currentStyle {
			styleCursor = i
			break
		}
	}

	tuiThemeCursor := 0
	for i, t := range render.TUIThemes() {
		if t.Name == cfg.TUITheme {
			tuiThemeCursor = i
			break
		}
	}

	ApplyTheme(render.ThemeByName(cfg.TUITheme))

	return ConfigModel{
		config:          cfg,
		configDir:       configDir,
		loggedIn:        loggedIn,
		view:            viewMain,
		cursor:          0,
		styleCursor:     styleCursor,
		tuiThemeCursor:  tuiThemeCursor,
		feedbackTimeout: 2 * time.Second,
	}
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			switch m.view {
			case viewMain:
				m.cursor--
				if m.cursor < 0 {
					m.cursor = menuItemCount - 1
				}
			case viewStyleSelect:
				m.styleCursor--
				if m.styleCursor < 0 {
					m.styleCursor = len(markdownStyles) - 1
				}
			case viewTUIThemeSelect:
				m.tuiThemeCursor--
				if m.tuiThemeCursor < 0 {
					m.tuiThemeCursor = len(render.TUIThemes()) - 1
				}
			}

		case "down", "j":
			switch m.view {
			case viewMain:
				m.cursor++
				if m.cursor >= menuItemCount {
					m.cursor = 0
				}
			case viewStyleSelect:
				m.styleCursor++
				if m.styleCursor >= len(markdownStyles) {
					m.styleCursor = 0
				}
			case viewTUIThemeSelect:
				m.tuiThemeCursor++
				if m.tuiThemeCursor >= len(render.TUIThemes()) {
					m.tuiThemeCursor = 0
				}
			}

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// handleSelect applies the highlighted menu action.
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewStyleSelect:
		m.config.Markdown.Style = markdownStyles[m.styleCursor]
		m.view = viewMain
		return m.save("Markdown style updated")

	case viewTUIThemeSelect:
		theme := render.TUIThemes()[m.tuiThemeCursor]
		m.config.TUITheme = theme.Name
		ApplyTheme(theme)
		m.view = viewMain
		return m.save("Theme updated")
	}

	switch m.cursor {
	case menuVerbose:
		m.config.Verbose = !m.config.Verbose
		return m.save("Verbose logging toggled")

	case menuCopyToClipboard:
		m.config.CopyToClipboard = !m.config.CopyToClipboard
		return m.save("Clipboard copy toggled")

	case menuEmoji:
		m.config.Markdown.EnableEmoji = !m.config.Markdown.EnableEmoji
		return m.save("Emoji rendering toggled")

	case menuStyle:
		m.view = viewStyleSelect

	case menuTUITheme:
		m.view = viewTUIThemeSelect

	case menuExit:
		return m, tea.Quit
	}

	return m, nil
}

// save persists the config and shows transient feedback.
func (m ConfigModel) save(feedback string) (tea.Model, tea.Cmd) {
	if err := config.SaveConfig(m.config); err != nil {
		m.feedback = fmt.Sprintf("Save failed: %v", err)
	} else {
		m.feedback = feedback
	}
	return m, clearFeedback(m.feedbackTimeout)
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 50 {
		contentWidth = 50
	}

	var body string
	switch m.view {
	case viewStyleSelect:
		body = m.renderStyleSelect(contentWidth)
	case viewTUIThemeSelect:
		body = m.renderTUIThemeSelect(contentWidth)
	default:
		body = m.renderMain(contentWidth)
	}

	sections := []string{
		menuHeaderStyle.Width(contentWidth).Render("Aegis Settings"),
		body,
	}

	if m.feedback != "" {
		sections = append(sections, menuFeedbackStyle.Render("  "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMain renders the top-level settings menu
func (m ConfigModel) renderMain(width int) string {
	var lines []string

	lines = append(lines, menuSectionTitleStyle.Render("Connection"))
	lines = append(lines, menuItemStyle.Render(
		fmt.Sprintf("Service URL: %s", menuValueStyle.Render(m.config.ResolveBaseURL()))))
	authState := menuDisabledStyle.Render("not logged in")
	if m.loggedIn {
		authState = menuEnabledStyle.Render("logged in")
	}
	lines = append(lines, menuItemStyle.Render("Session: ")+authState)
	lines = append(lines, menuPathStyle.Render("  Config dir: "+m.configDir))
	lines = append(lines, "")

	lines = append(lines, menuSectionTitleStyle.Render("Options"))
	lines = append(lines, m.menuLine(menuVerbose, "Verbose logging", onOff(m.config.Verbose)))
	lines = append(lines, m.menuLine(menuCopyToClipboard, "Copy replies to clipboard", onOff(m.config.CopyToClipboard)))
	lines = append(lines, m.menuLine(menuEmoji, "Emoji in markdown", onOff(m.config.Markdown.EnableEmoji)))
	lines = append(lines, m.menuLine(menuStyle, "Markdown style", m.currentStyle()))
	lines = append(lines, m.menuLine(menuTUITheme, "Color theme", m.currentTheme()))
	lines = append(lines, "")
	lines = append(lines, m.menuLine(menuExit, "Exit", ""))

	return menuPanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m ConfigModel) currentStyle() string {
	if m.config.Markdown.Style == "" {
		return "dark"
	}
	return m.config.Markdown.Style
}

func (m ConfigModel) currentTheme() string {
	return render.ThemeByName(m.config.TUITheme).Name
}

// onOff formats a boolean setting value.
func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// menuLine renders one main-menu row.
func (m ConfigModel) menuLine(index int, label, value string) string {
	cursor := "  "
	style := menuItemStyle
	if m.view == viewMain && index == m.cursor {
		cursor = menuCursorStyle.Render("> ")
		style = menuSelectedStyle
	}
	line := cursor + style.Render(label)
	if value != "" {
		line += menuValueStyle.Render(": " + value)
	}
	return line
}

// renderStyleSelect renders the markdown style picker
func (m ConfigModel) renderStyleSelect(width int) string {
	lines := []string{menuSectionTitleStyle.Render("Markdown style"), ""}
	for i, s := range markdownStyles {
		cursor := "  "
		style := menuItemStyle
		if i == m.styleCursor {
			cursor = menuCursorStyle.Render("> ")
			style = menuSelectedStyle
		}
		marker := ""
		if s == m.currentStyle() {
			marker = menuEnabledStyle.Render(" (current)")
		}
		lines = append(lines, cursor+style.Render(s)+marker)
	}
	return menuPanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderTUIThemeSelect renders the color theme picker
func (m ConfigModel) renderTUIThemeSelect(width int) string {
	lines := []string{menuSectionTitleStyle.Render("Color theme"), ""}
	for i, t := range render.TUIThemes() {
		cursor := "  "
		style := menuItemStyle
		if i == m.tuiThemeCursor {
			cursor = menuCursorStyle.Render("> ")
			style = menuSelectedStyle
		}
		marker := ""
		if t.Name == m.currentTheme() {
			marker = menuEnabledStyle.Render(" (current)")
		}
		lines = append(lines, cursor+style.Render(t.Name)+hintStyle.Render("  "+t.Description)+marker)
	}
	return menuPanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	shortcuts := []string{
		statusKeyStyle.Render("up/down") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Select"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Back/Quit"),
	}
	bar := strings.Join(shortcuts, "  |  ")
	return menuStatusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunConfig starts the settings TUI
func RunConfig() error {
	m := NewConfigModel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
