package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/ui/benchmarks"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

// StageView is one row of the stage checklist.
type StageView struct {
	Name      string
	Title     string
	Done      bool
	Active    bool
	Err       error
	StartedAt time.Time
	EndedAt   *time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	ClusterLabel string
	Region       string

	Stages []StageView
	Phase  model.Phase

	// Recent resource events, newest last.
	Resources []string
	Endpoint  string

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// NewApplyModel creates the dashboard model for the apply command.
func NewApplyModel(clusterLabel, region string) Model {
	return Model{
		ClusterLabel:     clusterLabel,
		Region:           region,
		Phase:            model.PhaseUnprovisioned,
		StartTime:        time.Now(),
		PerformanceScale: 1.0,
		Stages: []StageView{
			{Name: "cluster", Title: "LKE Cluster"},
			{Name: "credentials", Title: "Credentials"},
			{Name: "stabilize", Title: "Control Plane"},
			{Name: "workload", Title: "Workload"},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case EventMsg:
		m.applyEvent(msg.Event)

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyEvent(event workflow.Event) {
	switch event.Type {
	case workflow.EventStageStarted:
		m.startStage(event.Stage)
	case workflow.EventStageCompleted:
		m.finishStage(event.Stage, nil)
	case workflow.EventStageFailed:
		m.finishStage(event.Stage, event.Err)
	case workflow.EventPhaseChanged:
		m.Phase = event.Phase
	case workflow.EventResourceReady, workflow.EventResourceExists, workflow.EventResourceDeleted:
		m.recordResource(event)
	}
}

func (m *Model) stageIndex(name string) int {
	for i, stage := range m.Stages {
		if stage.Name == name {
			return i
		}
	}
	return -1
}

func (m *Model) startStage(name string) {
	idx := m.stageIndex(name)
	if idx < 0 {
		return
	}

	now := time.Now()
	// A later stage starting means the earlier ones are complete.
	for i := 0; i < idx; i++ {
		if m.Stages[i].Done {
			continue
		}
		m.Stages[i].Done = true
		m.Stages[i].Active = false
		if m.Stages[i].EndedAt == nil {
			end := now
			m.Stages[i].EndedAt = &end
		}
	}

	m.Stages[idx].Active = true
	m.Stages[idx].StartedAt = now
}

func (m *Model) finishStage(name string, err error) {
	idx := m.stageIndex(name)
	if idx < 0 {
		return
	}

	now := time.Now()
	m.Stages[idx].Active = false
	m.Stages[idx].Err = err
	if err == nil {
		m.Stages[idx].Done = true
	}
	if m.Stages[idx].EndedAt == nil {
		m.Stages[idx].EndedAt = &now
	}
}

func (m *Model) recordResource(event workflow.Event) {
	line := event.Message
	if event.Resource != "" {
		line = fmt.Sprintf("%s: %s", event.Resource, event.Message)
	}
	m.Resources = append(m.Resources, line)
	if len(m.Resources) > 6 {
		m.Resources = m.Resources[len(m.Resources)-6:]
	}

	if url := event.Fields["url"]; url != "" {
		m.Endpoint = url
	}
}

func (m *Model) updateETA() {
	if m.Done || m.Err != nil {
		m.EstimatedRemaining = 0
		return
	}

	current := ""
	var elapsed time.Duration
	history := make([]benchmarks.StageRecord, 0, len(m.Stages))
	for _, stage := range m.Stages {
		if stage.StartedAt.IsZero() {
			continue
		}
		history = append(history, benchmarks.StageRecord{
			Stage:     stage.Name,
			StartedAt: stage.StartedAt,
			EndedAt:   stage.EndedAt,
		})
		if stage.Active {
			current = stage.Name
			elapsed = time.Since(stage.StartedAt)
		}
	}
	if current == "" {
		m.EstimatedRemaining = 0
		return
	}

	m.PerformanceScale = benchmarks.PerformanceScale(current, elapsed, history)
	m.EstimatedRemaining = benchmarks.EstimateRemainingWithScale(current, elapsed, history, m.PerformanceScale)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
