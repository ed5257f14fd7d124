package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fractal/pkg/errors"
)

func TestMetricsStoreEvents(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.OnEdit("add", 2, time.Microsecond, nil)
	m.OnEdit("add", 3, time.Microsecond, nil)
	m.OnEdit("remove", 3, time.Microsecond, errors.New(errors.ErrCodeInvalidPath, "no such vertex"))
	m.OnEdit("cut", 3, time.Microsecond, context.Canceled)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.edits.WithLabelValues("add", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.edits.WithLabelValues("remove", "INVALID_PATH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.edits.WithLabelValues("cut", "INTERNAL_ERROR")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.treeSize))

	m.OnHistory("undo", true)
	m.OnHistory("undo", false)
	m.OnHistory("undo", false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.history.WithLabelValues("undo", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.history.WithLabelValues("undo", "false")))
}

func TestMetricsServerEvents(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnRequest(ctx, "/sessions", 201, time.Millisecond)
	m.OnRequest(ctx, "/sessions/{id}", 404, time.Millisecond)
	m.OnSessions(ctx, 4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/sessions", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/sessions/{id}", "404")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.sessions))
}

func TestNewMetricsRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.OnEdit("load", 1, 0, nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["fractal_edits_total"])
	assert.True(t, names["fractal_tree_vertices"])

	assert.Panics(t, func() { NewMetrics(reg) }, "registering twice should panic")
}
