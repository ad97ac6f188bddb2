package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	require.Error(t, Register(reg))
}

func TestRetrieveTotalCountsByLabel(t *testing.T) {
	RetrieveTotal.Reset()

	RetrieveTotal.WithLabelValues("ok").Inc()
	RetrieveTotal.WithLabelValues("ok").Inc()
	RetrieveTotal.WithLabelValues("error").Inc()

	require.Equal(t, float64(2), testutil.ToFloat64(RetrieveTotal.WithLabelValues("ok")))
	require.Equal(t, float64(1), testutil.ToFloat64(RetrieveTotal.WithLabelValues("error")))
}

func TestQueryBuildDurationObserves(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(QueryBuildDuration))

	QueryBuildDuration.Observe(0.01)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	require.Equal(t, uint64(1), families[0].GetMetric()[0].GetHistogram().GetSampleCount())
}
