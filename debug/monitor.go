// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/drake/einvite/session"
)

// DefaultInterval is how often stats are logged.
const DefaultInterval = 5 * time.Second

// StatsSource is what the monitor samples.
type StatsSource interface {
	Stats() session.Stats
}

// Monitor periodically logs session statistics when debug mode is enabled.
type Monitor struct {
	source   StatsSource
	interval time.Duration
	log      *zap.Logger
}

// NewMonitor creates a monitor for source. If debug mode is not enabled,
// returns nil; a nil Monitor does nothing.
func NewMonitor(enabled bool, source StatsSource, log *zap.Logger) *Monitor {
	if !enabled {
		return nil
	}
	return &Monitor{
		source:   source,
		interval: DefaultInterval,
		log:      log,
	}
}

// Start begins the monitoring loop in a goroutine. It stops when ctx is
// done.
func (m *Monitor) Start(ctx context.Context) {
	if m == nil {
		return
	}
	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.log.Debug("monitor started", zap.Duration("interval", m.interval))
	for {
		select {
		case <-ctx.Done():
			m.log.Debug("monitor stopped")
			return
		case <-ticker.C:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	s := m.source.Stats()
	m.log.Debug("stats",
		zap.Int("goroutines", s.Goroutines),
		zap.String("heap", humanize.IBytes(s.HeapAlloc)),
		zap.Int("backgrounds", s.Backgrounds),
		zap.Int("cached_backgrounds", s.CachedBackgrounds),
		zap.String("output_dir", s.OutputDir),
	)
}
