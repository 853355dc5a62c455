// Package session owns the state of one optimization session and the
// transitions that drive it: submit and reset.
package session

import "github.com/jonathan/shorts-optimizer/internal/types"

// Status is the derived position of a session in its state machine
type Status string

// Session statuses
const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// State is a read-only snapshot of a session.
// Result and Error are never both set.
type State struct {
	InputScript  string                    `json:"inputScript"`
	IsOptimizing bool                      `json:"isOptimizing"`
	Result       *types.OptimizationResult `json:"result"`
	Error        string                    `json:"error,omitempty"`
}

// Status derives the session status from the snapshot
func (s State) Status() Status {
	switch {
	case s.IsOptimizing:
		return StatusSubmitting
	case s.Result != nil:
		return StatusSucceeded
	case s.Error != "":
		return StatusFailed
	default:
		return StatusIdle
	}
}
