package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case CatalogLoadedMsg:
		m.loading = false
		m.err = nil
		if msg.Catalog == nil {
			return m, nil
		}
		m.setCatalog(msg.Catalog)
		m.recompute()
		cmd := m.focusCmd()
		return m, cmd

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, loadCatalogCmd(m.store)

	case key.Matches(msg, m.keys.Scene):
		if m.currentScene == SceneCalculator {
			m.currentScene = SceneCatalog
		} else {
			m.currentScene = SceneCalculator
		}
		return m, nil
	}

	// An error screen is dismissed by any other key
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	if m.currentScene != SceneCalculator {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		cmd := m.moveFocus(1)
		return m, cmd

	case key.Matches(msg, m.keys.Prev):
		cmd := m.moveFocus(-1)
		return m, cmd
	}

	switch fields[m.focus].kind {
	case kindChoice:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cycle(m.focus, -1)
		case key.Matches(msg, m.keys.Right):
			m.cycle(m.focus, 1)
		default:
			return m, nil
		}

	case kindToggle:
		if !key.Matches(msg, m.keys.Toggle, m.keys.Left, m.keys.Right) {
			return m, nil
		}
		m.toggle(m.focus)

	default:
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.applyText(m.focus)
		m.recompute()
		return m, cmd
	}

	m.recompute()
	return m, nil
}

// moveFocus shifts focus by delta fields, wrapping around
func (m *Model) moveFocus(delta int) tea.Cmd {
	if isText(m.focus) {
		m.inputs[m.focus].Blur()
	}
	m.focus = wrap(m.focus+delta, fieldCount)
	return m.focusCmd()
}

// focusCmd focuses the text input under the cursor, if any
func (m *Model) focusCmd() tea.Cmd {
	if !isText(m.focus) {
		return nil
	}
	return m.inputs[m.focus].Focus()
}

func isText(f int) bool {
	k := fields[f].kind
	return k == kindAmount || k == kindPercent
}
