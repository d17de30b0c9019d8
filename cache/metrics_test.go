package cache

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swrge/randy/model"
)

func TestCollectorExportsEntityCounts(t *testing.T) {
	_, c := newTestCache(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, model.GuildCreate{Guild: testGuild()}))

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector(c)))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "cache_entities" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "kind" {
					counts[l.GetValue()] = m.GetGauge().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(1), counts["guild"])
	assert.Equal(t, float64(2), counts["user"])
	assert.Equal(t, float64(2), counts["sticker"])
	assert.Equal(t, float64(1), counts["channel"])
}
