package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/shorts-optimizer/internal/export"
	"github.com/jonathan/shorts-optimizer/internal/session"
	"github.com/jonathan/shorts-optimizer/internal/types"
)

// waitForState blocks until the controller publishes the next snapshot
func waitForState(updates <-chan session.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

// copySection flattens one section and hands it to the clipboard writer
func copySection(copyFn func(string), result *types.OptimizationResult, info export.SectionInfo) tea.Cmd {
	return func() tea.Msg {
		text, err := export.Section(result, info.Name)
		if err == nil {
			copyFn(text)
		}
		return copiedMsg{Title: info.Title, Err: err}
	}
}
