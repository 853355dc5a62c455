// Package types provides type definitions for structured data used throughout the shorts optimizer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Shot is one numbered beat of the finished video
type Shot struct {
	Number int    `json:"number" validate:"min=1"`
	Visual string `json:"visual" validate:"required"` // What is on screen
	Audio  string `json:"audio" validate:"required"`  // Dialogue or voiceover
}

// OptimizationResult is the full output of one optimization call.
// Titles are requested as exactly five entries but any count is accepted.
type OptimizationResult struct {
	RefinedScript []Shot   `json:"refinedScript" validate:"required,min=1,dive"`
	Titles        []string `json:"titles" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	EditingGuide  string   `json:"editingGuide" validate:"required"`
}

// ShotSequenceError reports a shot whose number breaks the 1..n sequence.
type ShotSequenceError struct {
	Index    int
	Expected int
	Got      int
}

func (e *ShotSequenceError) Error() string {
	return fmt.Sprintf("refinedScript[%d].number: expected %d, got %d", e.Index, e.Expected, e.Got)
}

// Validate checks struct tags and that shot numbers run contiguously from 1.
func (r *OptimizationResult) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}

	for i, shot := range r.RefinedScript {
		if shot.Number != i+1 {
			return &ShotSequenceError{Index: i, Expected: i + 1, Got: shot.Number}
		}
	}
	return nil
}
