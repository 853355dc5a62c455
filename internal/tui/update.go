package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/shorts-optimizer/internal/export"
	"github.com/jonathan/shorts-optimizer/internal/session"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case stateMsg:
		return m.handleState(msg)
	case copiedMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			m.notice = fmt.Sprintf("Copied %q to clipboard", msg.Title)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.input.SetWidth(max(msg.Width-4, 20))
	m.results.Width = msg.Width
	m.results.Height = max(msg.Height-6, 5)
	m.results.SetContent(m.renderSections())
	return m, nil
}

func (m Model) handleState(msg stateMsg) (tea.Model, tea.Cmd) {
	prev := m.state
	m.state = session.State(msg)
	if m.state.Result != nil && prev.Result != m.state.Result {
		m.results.SetContent(m.renderSections())
		m.results.GotoTop()
	}
	return m, waitForState(m.updates)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+r":
		m.controller.Reset()
		m.input.Reset()
		m.notice = ""
		m.state = m.controller.State()
		return m, nil
	}

	if m.state.Result != nil {
		return m.handleResultKeys(msg)
	}

	if msg.String() == "ctrl+s" {
		if _, ok := m.controller.Submit(m.ctx, m.input.Value()); !ok {
			m.notice = m.rejectReason()
		} else {
			m.notice = ""
		}
		m.state = m.controller.State()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.controller.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "1", "2", "3", "4":
		info := export.Sections()[int(key[0]-'1')]
		return m, copySection(m.copyFn, m.state.Result, info)
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) rejectReason() string {
	switch {
	case m.state.IsOptimizing:
		return "An optimization is already running"
	default:
		return "Paste a script first"
	}
}
