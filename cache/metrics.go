package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Collector exports collection cardinalities as prometheus gauges,
// reading them from the store at scrape time. Register it with any
// prometheus registry:
//
//	reg.MustRegister(cache.NewCollector(c))
type Collector struct {
	stats   Stats
	log     *zap.Logger
	timeout time.Duration
	desc    *prometheus.Desc
}

func NewCollector(c *Cache) *Collector {
	return &Collector{
		stats:   c.Stats(),
		log:     c.log,
		timeout: 5 * time.Second,
		desc: prometheus.NewDesc(
			"cache_entities",
			"Number of cached entities by kind.",
			[]string{"kind"},
			nil,
		),
	}
}

func (m *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.desc
}

func (m *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	counts := []struct {
		kind EntityKind
		fn   func(context.Context) (int64, error)
	}{
		{KindChannel, m.stats.Channels},
		{KindEmoji, m.stats.Emojis},
		{KindGuild, m.stats.Guilds},
		{KindMessage, m.stats.Messages},
		{KindRole, m.stats.Roles},
		{KindSticker, m.stats.Stickers},
		{KindUser, m.stats.Users},
	}
	for _, c := range counts {
		n, err := c.fn(ctx)
		if err != nil {
			m.log.Warn("metrics scrape failed",
				zap.Stringer("kind", c.kind),
				zap.Error(err))
			continue
		}
		ch <- prometheus.MustNewConstMetric(m.desc, prometheus.GaugeValue, float64(n), c.kind.String())
	}
}
