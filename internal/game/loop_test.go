package game

import (
	"math"
	"testing"
)

func TestFixedStepperAccumulates(t *testing.T) {
	fs := NewFixedStepper(0.25, 1)
	var total float64
	step := func(dt float64) { total += dt }

	if n := fs.Advance(0.1, step); n != 0 {
		t.Errorf("ran %d ticks for less than one tick of time", n)
	}
	if n := fs.Advance(0.2, step); n != 1 {
		t.Errorf("ran %d ticks, want 1", n)
	}
	if math.Abs(fs.Alpha()-0.2) > 1e-9 {
		t.Errorf("alpha = %f, want 0.2", fs.Alpha())
	}
	if total != 0.25 {
		t.Errorf("simulated %f seconds, want 0.25", total)
	}
}

func TestFixedStepperCapsCatchUp(t *testing.T) {
	fs := NewFixedStepper(0.25, 0.5)
	n := fs.Advance(30, func(float64) {})
	if n != 2 {
		t.Errorf("ran %d ticks after a stall, want 2", n)
	}
	if fs.Advance(-1, func(float64) {}) != 0 {
		t.Error("negative elapsed time ran ticks")
	}

	fs.Reset()
	if fs.Alpha() != 0 {
		t.Errorf("alpha after reset = %f", fs.Alpha())
	}
}

func TestFixedStepperCatchUpNeverBelowOneTick(t *testing.T) {
	fs := NewFixedStepper(0.25, 0.1)
	if fs.MaxCatchUp != 0.25 {
		t.Errorf("MaxCatchUp = %f, want raised to one tick", fs.MaxCatchUp)
	}
}
