package provisioning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/imamik/aks-storage/internal/config"
)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{
		events:   make([]Event, 0),
		messages: make([]string, 0),
		fields:   make(map[string]string),
	}
}

func (m *MockObserver) Printf(format string, _ ...any) {
	m.messages = append(m.messages, format)
}

func (m *MockObserver) Event(event Event) {
	m.events = append(m.events, event)
}

func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{Type: EventProgress, Phase: phase, Message: "progress"})
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	return m
}

func (m *MockObserver) eventTypes() []EventType {
	types := make([]EventType, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.Type)
	}
	return types
}

func newObservedZap(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestZapObserver_Printf(t *testing.T) {
	t.Parallel()
	logger, logs := newObservedZap(zapcore.InfoLevel)
	obs := NewZapObserver(logger).WithFields(map[string]string{"run": "abc123"})

	obs.Printf("test message: %s", "value")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test message: value", entries[0].Message)
	assert.Equal(t, "abc123", entries[0].ContextMap()["run"])
}

func TestZapObserver_EventLevels(t *testing.T) {
	t.Parallel()
	logger, logs := newObservedZap(zapcore.DebugLevel)
	obs := NewZapObserver(logger)

	LogResourceCreated(obs, "infrastructure", "identity", "id-1", "/subscriptions/x")
	LogPhaseFailed(obs, "cluster", errors.New("boom"))
	obs.Event(Event{Type: EventValidationWarning, Phase: "preflight", Message: "careful"})
	obs.Progress("storage", 1, 4)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "id-1", entries[0].ContextMap()["resource"])
	assert.Equal(t, "identity", entries[0].ContextMap()["type"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "failed: boom", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[3].Level)
	assert.Equal(t, "25", entries[3].ContextMap()["percent"])
}

func TestZapObserver_ContextFieldsDoNotOverrideEventFields(t *testing.T) {
	t.Parallel()
	logger, logs := newObservedZap(zapcore.InfoLevel)
	obs := NewZapObserver(logger).WithFields(map[string]string{"type": "context", "run": "r1"})

	obs.Event(Event{Type: EventResourceExists, Message: "exists", Fields: map[string]string{"type": "event"}})

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "event", fields["type"])
	assert.Equal(t, "r1", fields["run"])
}

func TestZapObserver_Listener(t *testing.T) {
	t.Parallel()
	logger, _ := newObservedZap(zapcore.InfoLevel)
	obs := NewZapObserver(logger)

	var received []Event
	obs.OnEvent(func(e Event) { received = append(received, e) })
	child := obs.WithFields(map[string]string{"k": "v"})

	LogPhaseStart(child, "infrastructure")

	require.Len(t, received, 1)
	assert.Equal(t, EventPhaseStarted, received[0].Type)
	assert.False(t, received[0].Timestamp.IsZero())
	assert.Equal(t, "v", received[0].Fields["k"])
}

func TestMockObserver_Events(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()

	LogPhaseStart(obs, "test-phase")
	LogResourceEnsured(obs, "infra", "storage account", "acct", "/id", true)
	LogResourceEnsured(obs, "infra", "resource group", "rg", "/rg", false)
	LogResourceFailed(obs, "infra", "role assignment", "reader", errors.New("denied"))
	LogPhaseComplete(obs, "test-phase", 2*time.Second)

	assert.Equal(t, []EventType{
		EventPhaseStarted,
		EventResourceCreated,
		EventResourceExists,
		EventResourceFailed,
		EventPhaseCompleted,
	}, obs.eventTypes())
	assert.Equal(t, "/id", obs.events[1].Fields["id"])
	assert.Equal(t, "completed in 2s", obs.events[4].Message)
}

func TestLogCaseResult(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()
	uc := config.AllUseCases()[0]

	LogCaseResult(obs, "validation", CaseResult{UseCase: uc, Passed: true, Keyless: true, Stage: StageValidation})
	LogCaseResult(obs, "storage", CaseResult{UseCase: uc, Stage: StageStorage, Message: "no quota"})

	require.Len(t, obs.events, 2)
	assert.Equal(t, EventCasePassed, obs.events[0].Type)
	assert.Equal(t, "static-blob", obs.events[0].Resource)
	assert.Equal(t, "true", obs.events[0].Fields["keyless"])
	assert.Equal(t, EventCaseFailed, obs.events[1].Type)
	assert.Contains(t, obs.events[1].Message, "no quota")
	assert.Equal(t, "storage", obs.events[1].Fields["stage"])
}
