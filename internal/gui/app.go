package gui

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bounce/internal/experiment"
	"github.com/san-kum/bounce/internal/sim"
)

const telemetrySamples = 240

// Run opens a window sized from the experiment's config and blocks until it
// is closed or ctx is canceled.
func Run(ctx context.Context, exp *experiment.Experiment, logger *log.Logger) (*sim.Result, error) {
	cfg := exp.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	win := Open(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	defer win.Close()

	hud := NewHUD(telemetrySamples)
	win.AddOverlay(hud)

	s, err := exp.Simulator(win, sim.NewWallClock(), sim.WithLogger(logger), sim.WithObserver(hud))
	if err != nil {
		return nil, err
	}

	logger.Info("window opened", "width", cfg.Window.Width, "height", cfg.Window.Height, "bodies", s.World().Len(), "seed", exp.Seed())
	return s.Run(ctx)
}
