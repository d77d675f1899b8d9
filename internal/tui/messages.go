package tui

import (
	"github.com/rgehrsitz/rpfire/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
)

// String returns the scene name shown in the title bar
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Inputs"
	case SceneResults:
		return "Projection"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// InputLoadedMsg signals an input file has been read
type InputLoadedMsg struct {
	Input *domain.SimulationInput
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CalculationCompleteMsg signals a simulation has finished
type CalculationCompleteMsg struct {
	Result *domain.SimulationResult
	Err    error
}
