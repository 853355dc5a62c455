// Package tui is the interactive terminal front end over a session controller.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/shorts-optimizer/internal/session"
	"github.com/muesli/termenv"
)

// Model is the bubbletea model. The controller owns all session state; the
// model only mirrors the latest snapshot it was sent.
type Model struct {
	ctx         context.Context
	controller  *session.Controller
	updates     <-chan session.State
	unsubscribe func()
	copyFn      func(string)

	input    textarea.Model
	results  viewport.Model
	state    session.State
	notice   string
	width    int
	height   int
	quitting bool
}

// Option configures a Model
type Option func(*Model)

// WithClipboard replaces the OSC52 clipboard writer
func WithClipboard(copyFn func(string)) Option {
	return func(m *Model) { m.copyFn = copyFn }
}

// NewModel creates a Model subscribed to controller
func NewModel(ctx context.Context, controller *session.Controller, opts ...Option) Model {
	input := textarea.New()
	input.Placeholder = "Paste your raw script ideas here... Gemini will handle the formatting, shots, and SEO."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(12)
	input.Focus()

	updates, unsubscribe := controller.Subscribe()
	m := Model{
		ctx:         ctx,
		controller:  controller,
		updates:     updates,
		unsubscribe: unsubscribe,
		copyFn:      termenv.Copy,
		input:       input,
		results:     viewport.New(80, 20),
		state:       controller.State(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.input.SetValue(m.state.InputScript)
	return m
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForState(m.updates))
}

// Close stops the controller subscription
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}
