// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package dmmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cilium/dedupmulti/pkg/dedupmulti/dmmetrics"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestNewCollectorPopulatesAllMetrics(t *testing.T) {
	c := dmmetrics.NewCollector("route")
	require.NotNil(t, c.Records)
	require.NotNil(t, c.Entries)
	require.NotNil(t, c.Heads)
	require.NotNil(t, c.DirtyEvicted)
	assert.Len(t, c.Collectors(), 4)
}

func TestCollectorRegistersUnderNamespace(t *testing.T) {
	c := dmmetrics.NewCollector("route")
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, dmmetrics.Namespace+"_route_interned_records")
	assert.Contains(t, names, dmmetrics.Namespace+"_route_member_entries")
	assert.Contains(t, names, dmmetrics.Namespace+"_route_partition_heads")
	assert.Contains(t, names, dmmetrics.Namespace+"_route_dirty_sweep_evicted_total")
}

func TestRegisterTwiceFails(t *testing.T) {
	c := dmmetrics.NewCollector("route")
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))
	assert.Error(t, c.Register(reg))
}

func TestGaugesTrackCounts(t *testing.T) {
	c := dmmetrics.NewCollector("addr")
	c.Records.Inc()
	c.Records.Inc()
	c.Heads.Set(3)

	assert.Equal(t, float64(2), gaugeValue(t, c.Records))
	assert.Equal(t, float64(3), gaugeValue(t, c.Heads))
}
