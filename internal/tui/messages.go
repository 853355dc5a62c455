package tui

import "github.com/jonathan/shorts-optimizer/internal/session"

// stateMsg carries a session snapshot published by the controller
type stateMsg session.State

// copiedMsg reports the outcome of a clipboard copy
type copiedMsg struct {
	Title string
	Err   error
}
