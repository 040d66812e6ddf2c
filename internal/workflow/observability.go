package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/chris-milsted/lkeup/internal/logging"
	"github.com/chris-milsted/lkeup/internal/model"
)

// Observer receives structured events as the workflow progresses. The
// console logger, the progress TUI and the run journal all implement it.
type Observer interface {
	Event(event Event)
}

// Event represents a structured workflow event.
type Event struct {
	Type      EventType
	Stage     string      // stage name, e.g. "cluster", "workload"
	Phase     model.Phase // phase after the event, for phase.changed
	Resource  string      // resource name/ID if applicable
	Message   string
	Err       error
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of workflow event.
type EventType string

const (
	// EventStageStarted indicates a workflow stage has started.
	EventStageStarted EventType = "stage.started"
	// EventStageCompleted indicates a workflow stage completed successfully.
	EventStageCompleted EventType = "stage.completed"
	// EventStageFailed indicates a workflow stage failed.
	EventStageFailed EventType = "stage.failed"

	// EventPhaseChanged indicates the workflow advanced to a new phase.
	EventPhaseChanged EventType = "phase.changed"

	// EventResourceReady indicates a resource reached its desired state.
	EventResourceReady EventType = "resource.ready"
	// EventResourceExists indicates a resource already existed and is reused.
	EventResourceExists EventType = "resource.exists"
	// EventResourceDeleted indicates a resource was deleted or found absent.
	EventResourceDeleted EventType = "resource.deleted"

	// EventProgress carries informational progress within a stage.
	EventProgress EventType = "progress"
)

// LogObserver writes events through the structured logger.
type LogObserver struct {
	logger logging.Logger
}

// NewLogObserver creates an observer backed by the given logger.
func NewLogObserver(logger logging.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Stage != "" {
		kv = append(kv, "stage", event.Stage)
	}
	if event.Phase != "" {
		kv = append(kv, "phase", string(event.Phase))
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	for k, v := range event.Fields {
		kv = append(kv, k, v)
	}

	if event.Err != nil {
		kv = append(kv, "error", event.Err.Error())
	}

	ctx := context.Background()
	if event.Type == EventStageFailed {
		o.logger.Error(ctx, event.Message, kv...)
		return
	}
	o.logger.Info(ctx, event.Message, kv...)
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

// Event implements Observer.
func (m MultiObserver) Event(event Event) {
	for _, o := range m {
		o.Event(event)
	}
}

// Helper functions for common events

// LogResourceReady emits a resource.ready event.
func LogResourceReady(observer Observer, stage, resourceType, resourceName string, fields map[string]string) {
	observer.Event(Event{
		Type:      EventResourceReady,
		Stage:     stage,
		Resource:  resourceName,
		Message:   fmt.Sprintf("%s ready", resourceType),
		Timestamp: time.Now(),
		Fields:    fields,
	})
}

// LogResourceExists emits a resource.exists event.
func LogResourceExists(observer Observer, stage, resourceType, resourceName string) {
	observer.Event(Event{
		Type:      EventResourceExists,
		Stage:     stage,
		Resource:  resourceName,
		Message:   fmt.Sprintf("%s already exists, reusing", resourceType),
		Timestamp: time.Now(),
	})
}

// LogResourceDeleted emits a resource.deleted event.
func LogResourceDeleted(observer Observer, stage, resourceType, resourceName string) {
	observer.Event(Event{
		Type:      EventResourceDeleted,
		Stage:     stage,
		Resource:  resourceName,
		Message:   fmt.Sprintf("%s deleted", resourceType),
		Timestamp: time.Now(),
	})
}
