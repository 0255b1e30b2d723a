package config

import (
	"math"
	"testing"
	"time"

	"github.com/playmatatu/billiard/internal/game"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_PORT", "REDIS_URL", "EVENTS_CHANNEL", "TABLE_LENGTH", "NUM_BALLS", "TICK_RATE", "BROADCAST_HZ", "MAX_FORCE", "SNAPSHOT_FORMAT"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Environment != "development" || cfg.Port != "8080" {
		t.Errorf("env=%q port=%q", cfg.Environment, cfg.Port)
	}
	if cfg.RedisURL != "" || cfg.EventsChannel != "table_events" {
		t.Errorf("redis=%q channel=%q", cfg.RedisURL, cfg.EventsChannel)
	}
	if cfg.TableLength != game.TableLength || cfg.NumBalls != game.NumBalls {
		t.Errorf("table=%f balls=%d", cfg.TableLength, cfg.NumBalls)
	}
	if math.Abs(cfg.MaxForce-3) > 1e-9 {
		t.Errorf("max force = %f m/s, want 3", cfg.MaxForce)
	}
	if cfg.SnapshotFormat != "json" {
		t.Errorf("snapshot format = %q", cfg.SnapshotFormat)
	}
	if cfg.BroadcastEvery() != 2 {
		t.Errorf("broadcast every %d ticks, want 2", cfg.BroadcastEvery())
	}
	if cfg.TickInterval() != time.Second/60 {
		t.Errorf("tick interval = %v", cfg.TickInterval())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TABLE_LENGTH", "2.4")
	t.Setenv("NUM_BALLS", "10")
	t.Setenv("TICK_RATE", "120")
	t.Setenv("BROADCAST_HZ", "20")
	t.Setenv("MAX_CATCH_UP_MS", "100")
	t.Setenv("DAMPING", "not-a-number")

	cfg := Load()
	if cfg.TableLength != 2.4 || cfg.NumBalls != 10 {
		t.Errorf("table=%f balls=%d", cfg.TableLength, cfg.NumBalls)
	}
	if cfg.Damping != game.Damping {
		t.Errorf("invalid DAMPING should fall back, got %f", cfg.Damping)
	}
	if cfg.BroadcastEvery() != 6 {
		t.Errorf("broadcast every %d ticks, want 6", cfg.BroadcastEvery())
	}

	opts := cfg.SimulationOptions()
	if opts.TickTime != 1.0/120 || opts.MaxCatchUp != 0.1 {
		t.Errorf("tick=%f catch-up=%f", opts.TickTime, opts.MaxCatchUp)
	}
	if opts.NumPockets != game.NumPockets {
		t.Errorf("pockets = %d", opts.NumPockets)
	}

	sim, err := game.NewSimulation(opts)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if len(sim.Balls) != 10 || sim.Table.Width != 1.2 {
		t.Errorf("balls=%d width=%f", len(sim.Balls), sim.Table.Width)
	}
}
