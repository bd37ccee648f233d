package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegislabs/aegis/internal/render"
)

func newSettingsModel(t *testing.T) ConfigModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	m := NewConfigModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(ConfigModel)
}

func TestOnOff(t *testing.T) {
	if onOff(true) != "on" || onOff(false) != "off" {
		t.Error("onOff formatting wrong")
	}
}

func TestSettingsNavigationWraps(t *testing.T) {
	m := newSettingsModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(ConfigModel)
	if m.cursor != menuItemCount-1 {
		t.Errorf("cursor after wrap up = %d, want %d", m.cursor, menuItemCount-1)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(ConfigModel)
	if m.cursor != 0 {
		t.Errorf("cursor after wrap down = %d, want 0", m.cursor)
	}
}

func TestSettingsToggleVerbose(t *testing.T) {
	m := newSettingsModel(t)
	was := m.config.Verbose

	m.cursor = menuVerbose
	updated, cmd := m.handleSelect()
	m = updated.(ConfigModel)

	if m.config.Verbose == was {
		t.Error("verbose flag did not toggle")
	}
	if m.feedback == "" {
		t.Error("toggle should set feedback")
	}
	if cmd == nil {
		t.Error("toggle should schedule feedback clear")
	}
}

func TestSettingsThemeSubmenu(t *testing.T) {
	m := newSettingsModel(t)

	m.cursor = menuTUITheme
	updated, _ := m.handleSelect()
	m = updated.(ConfigModel)
	if m.view != viewTUIThemeSelect {
		t.Fatalf("view = %d, want theme select", m.view)
	}

	// Pick the last theme
	m.tuiThemeCursor = len(render.TUIThemes()) - 1
	updated, _ = m.handleSelect()
	m = updated.(ConfigModel)

	want := render.TUIThemes()[len(render.TUIThemes())-1].Name
	if m.config.TUITheme != want {
		t.Errorf("theme = %q, want %q", m.config.TUITheme, want)
	}
	if m.view != viewMain {
		t.Error("selection should return to main view")
	}

	// Leave styles on the default theme for other tests.
	ApplyTheme(render.TokyoNightTheme)
}

func TestSettingsStyleSubmenu(t *testing.T) {
	m := newSettingsModel(t)

	m.cursor = menuStyle
	updated, _ := m.handleSelect()
	m = updated.(ConfigModel)
	if m.view != viewStyleSelect {
		t.Fatalf("view = %d, want style select", m.view)
	}

	m.styleCursor = 1 // "light"
	updated, _ = m.handleSelect()
	m = updated.(ConfigModel)
	if m.config.Markdown.Style != "light" {
		t.Errorf("style = %q, want light", m.config.Markdown.Style)
	}
}

func TestSettingsEscBehaviour(t *testing.T) {
	m := newSettingsModel(t)

	m.view = viewStyleSelect
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(ConfigModel)
	if m.view != viewMain {
		t.Error("esc in submenu should return to main view")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc on main view should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc on main view should quit")
	}
}

func TestSettingsViewListsOptions(t *testing.T) {
	m := newSettingsModel(t)
	view := m.View()

	for _, want := range []string{"Aegis Settings", "Service URL", "Verbose logging", "Color theme"} {
		if !strings.Contains(view, want) {
			t.Errorf("settings view missing %q", want)
		}
	}
}
