// Package tui provides the Bubble Tea dashboard shown while a workflow runs.
package tui

import "github.com/chris-milsted/lkeup/internal/workflow"

// EventMsg wraps a workflow event for the dashboard.
type EventMsg struct {
	Event workflow.Event
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries the error that ended the workflow.
type ErrMsg struct{ Err error }

// DoneMsg signals that the workflow completed.
type DoneMsg struct{}
