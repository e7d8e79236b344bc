package provisioning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/aks-storage/internal/config"
)

func TestMetrics_RecordCase(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	uc := config.AllUseCases()[0]

	m.RecordCase(CaseResult{UseCase: uc, Passed: true, Keyless: true, Duration: 3 * time.Second})

	gauge, err := m.caseResult.GetMetricWithLabelValues("static-blob", "Blob", "Persistent", "true")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(gauge))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.caseDuration.WithLabelValues("static-blob")))
}

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	m.RecordResource("storage account", true)
	m.RecordResource("storage account", true)
	m.RecordResource("resource group", false)
	m.RecordRun(ExitPartial)
	m.ObservePhase("cluster", time.Minute, errors.New("x"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.resources.WithLabelValues("storage account", "true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.resources.WithLabelValues("resource group", "false")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.runs.WithLabelValues("2")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.phaseDuration))
}

func TestMetrics_NilReceiver(t *testing.T) {
	t.Parallel()
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePhase("x", time.Second, nil)
		m.RecordResource("x", true)
		m.RecordCase(CaseResult{UseCase: config.AllUseCases()[0]})
		m.RecordRun(0)
	})
	assert.NoError(t, m.WriteToFile("ignored"))
}

func TestMetrics_WriteToFile(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.RecordRun(ExitAllPassed)
	path := filepath.Join(t.TempDir(), "aks_storage.prom")

	require.NoError(t, m.WriteToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `aks_storage_runs_total{exit_code="0"} 1`)
}
