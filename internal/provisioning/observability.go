package provisioning

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "infrastructure", "cluster")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates resource creation failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"
	// EventValidationError indicates a validation error.
	EventValidationError EventType = "validation.error"

	// EventCasePassed indicates a use case passed validation.
	EventCasePassed EventType = "case.passed"
	// EventCaseFailed indicates a use case failed.
	EventCaseFailed EventType = "case.failed"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// Logger is the printf-style subset of Observer.
type Logger interface {
	Printf(format string, v ...any)
}

// ZapObserver implements Observer on top of a zap logger. An optional
// listener receives every event, which is how the terminal UI follows a run.
type ZapObserver struct {
	logger        *zap.Logger
	contextFields map[string]string
	listener      func(Event)
}

// NewZapObserver creates an observer writing to logger.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// OnEvent registers fn to receive every event after it is logged.
func (o *ZapObserver) OnEvent(fn func(Event)) {
	o.listener = fn
}

// Printf implements Logger.
func (o *ZapObserver) Printf(format string, v ...any) {
	o.logger.Info(fmt.Sprintf(format, v...), o.zapFields(nil)...)
}

// Event implements Observer interface.
func (o *ZapObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	// Merge context fields
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	fields := []zap.Field{zap.String("event", string(event.Type))}
	if event.Phase != "" {
		fields = append(fields, zap.String("phase", event.Phase))
	}
	if event.Resource != "" {
		fields = append(fields, zap.String("resource", event.Resource))
	}
	for _, k := range sortedKeys(event.Fields) {
		fields = append(fields, zap.String(k, event.Fields[k]))
	}

	switch event.Type {
	case EventPhaseFailed, EventResourceFailed, EventValidationError:
		o.logger.Error(event.Message, fields...)
	case EventValidationWarning:
		o.logger.Warn(event.Message, fields...)
	case EventProgress:
		o.logger.Debug(event.Message, fields...)
	default:
		o.logger.Info(event.Message, fields...)
	}

	if o.listener != nil {
		o.listener(event)
	}
}

// Progress implements Observer interface.
func (o *ZapObserver) Progress(phase string, current, total int) {
	fields := map[string]string{
		"current": strconv.Itoa(current),
		"total":   strconv.Itoa(total),
	}
	if total > 0 {
		fields["percent"] = strconv.Itoa(current * 100 / total)
	}
	o.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("progress %d/%d", current, total),
		Fields:  fields,
	})
}

// WithFields implements Observer interface.
func (o *ZapObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	maps.Copy(newFields, o.contextFields)
	maps.Copy(newFields, fields)

	return &ZapObserver{
		logger:        o.logger,
		contextFields: newFields,
		listener:      o.listener,
	}
}

func (o *ZapObserver) zapFields(extra map[string]string) []zap.Field {
	merged := make(map[string]string, len(o.contextFields)+len(extra))
	maps.Copy(merged, o.contextFields)
	maps.Copy(merged, extra)
	fields := make([]zap.Field, 0, len(merged))
	for _, k := range sortedKeys(merged) {
		fields = append(fields, zap.String(k, merged[k]))
	}
	return fields
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("deleting %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deleted", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceEnsured logs a created or already existing resource.
func LogResourceEnsured(observer Observer, phase, resourceType, resourceName, resourceID string, created bool) {
	if created {
		LogResourceCreated(observer, phase, resourceType, resourceName, resourceID)
		return
	}
	LogResourceExists(observer, phase, resourceType, resourceName, resourceID)
}

// LogResourceFailed logs a failed resource operation.
func LogResourceFailed(observer Observer, phase, resourceType, resourceName string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s failed: %v", resourceType, err),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogCaseResult logs the outcome of a use case.
func LogCaseResult(observer Observer, phase string, r CaseResult) {
	eventType := EventCasePassed
	msg := "passed"
	if !r.Passed {
		eventType = EventCaseFailed
		msg = "failed: " + r.Message
	}
	observer.Event(Event{
		Type:     eventType,
		Phase:    phase,
		Resource: r.UseCase.Slug(),
		Message:  fmt.Sprintf("%s %s", r.UseCase, msg),
		Fields: map[string]string{
			"stage":    string(r.Stage),
			"keyless":  strconv.FormatBool(r.Keyless),
			"duration": r.Duration.Round(time.Millisecond).String(),
		},
	})
}
