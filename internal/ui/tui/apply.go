package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris-milsted/lkeup/internal/workflow"
)

// programObserver forwards workflow events into the running program.
type programObserver struct {
	program *tea.Program
}

func (o *programObserver) Event(event workflow.Event) {
	o.program.Send(EventMsg{Event: event})
}

// RunApply drives run under the dashboard, handing it an observer wired to
// the display. Quitting the dashboard only detaches the display; the
// workflow keeps running and its result is still returned.
func RunApply(run func(observer workflow.Observer) error, clusterLabel, region string) error {
	m := NewApplyModel(clusterLabel, region)
	p := tea.NewProgram(m, tea.WithAltScreen())

	result := make(chan error, 1)
	go func() {
		err := run(&programObserver{program: p})
		result <- err
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	if fm, ok := finalModel.(Model); ok && fm.Err != nil {
		return fm.Err
	}
	return <-result
}
