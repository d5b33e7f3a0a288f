package usecase

import (
	"github.com/benbjohnson/clock"

	"github.com/caretrip/caretrip/internal/pkg/logger"
	"github.com/caretrip/caretrip/internal/pkg/models"
)

// supervisor runs the periodic health sweep over all live sessions. It is
// observability only: it logs sessions with stale data or unusual runtimes
// and never mutates tracking state.
type supervisor struct {
	cfg      models.TrackingConfig
	clk      clock.Clock
	registry *sessionRegistry
	stop     chan struct{}
	done     chan struct{}
}

func newSupervisor(cfg models.TrackingConfig, clk clock.Clock, registry *sessionRegistry) *supervisor {
	return &supervisor{
		cfg:      cfg,
		clk:      clk,
		registry: registry,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (sv *supervisor) run() {
	ticker := sv.clk.Ticker(sv.cfg.SweepInterval)
	defer ticker.Stop()
	defer close(sv.done)

	for {
		select {
		case <-ticker.C:
			sv.sweep()
		case <-sv.stop:
			return
		}
	}
}

func (sv *supervisor) sweep() {
	now := sv.clk.Now()

	for _, s := range sv.registry.list() {
		snap := s.snapshot()
		if !snap.IsActive {
			continue
		}

		if age := now.Sub(snap.LastUpdate); age > sv.cfg.StaleAfter {
			logger.Warn("Tracking session has stale location data",
				logger.String("ride_id", snap.RideID),
				logger.Duration("since_last_update", age))
		}

		if runtime := now.Sub(snap.StartTime); runtime > sv.cfg.MaxSessionAge {
			logger.Warn("Tracking session running unusually long",
				logger.String("ride_id", snap.RideID),
				logger.Duration("running_for", runtime))
		}
	}
}

func (sv *supervisor) shutdown() {
	close(sv.stop)
	<-sv.done
}
