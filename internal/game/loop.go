package game

// FixedStepper turns variable frame times into fixed-size ticks. Wall-clock
// time beyond MaxCatchUp in one call is dropped so a stall cannot snowball.
type FixedStepper struct {
	Tick       float64
	MaxCatchUp float64

	accumulator float64
}

func NewFixedStepper(tick, maxCatchUp float64) *FixedStepper {
	if maxCatchUp < tick {
		maxCatchUp = tick
	}
	return &FixedStepper{Tick: tick, MaxCatchUp: maxCatchUp}
}

// Advance adds elapsed seconds to the accumulator and calls step once per
// whole tick it holds. It returns the number of ticks run.
func (fs *FixedStepper) Advance(elapsed float64, step func(dt float64)) int {
	if elapsed <= 0 {
		return 0
	}
	if elapsed > fs.MaxCatchUp {
		elapsed = fs.MaxCatchUp
	}
	fs.accumulator += elapsed

	n := 0
	for fs.accumulator >= fs.Tick {
		step(fs.Tick)
		fs.accumulator -= fs.Tick
		n++
	}
	return n
}

// Alpha is the fraction of a tick left in the accumulator, for renderers that
// interpolate between the last two states.
func (fs *FixedStepper) Alpha() float64 {
	return fs.accumulator / fs.Tick
}

// Reset drops any carried time.
func (fs *FixedStepper) Reset() {
	fs.accumulator = 0
}
