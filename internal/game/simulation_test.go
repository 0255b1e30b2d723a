package game

import (
	"math"
	"testing"
)

// newTwoBallSim returns a simulation with only the cue ball and ball 1.
func newTwoBallSim(t *testing.T) *Simulation {
	t.Helper()
	sim, err := NewSimulation(Options{NumBalls: 2})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return sim
}

func countEvents(events []CollisionEvent, typ string) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func assertContained(t *testing.T, sim *Simulation) {
	t.Helper()
	for _, b := range sim.Balls {
		if !b.Visible {
			continue
		}
		if b.Position.X < b.Radius || b.Position.X > sim.Table.Length-b.Radius ||
			b.Position.Y < b.Radius || b.Position.Y > sim.Table.Width-b.Radius {
			t.Fatalf("tick %d: ball %d off the table at (%.6f, %.6f)", sim.Tick(), b.ID, b.Position.X, b.Position.Y)
		}
	}
}

// assertSeparated fails if any two visible balls overlap by more than tol.
func assertSeparated(t *testing.T, sim *Simulation, tol float64) {
	t.Helper()
	for i, a := range sim.Balls {
		if !a.Visible {
			continue
		}
		for _, b := range sim.Balls[i+1:] {
			if !b.Visible {
				continue
			}
			d := b.Position.Minus(a.Position).Length()
			if overlap := a.Radius + b.Radius - d; overlap > tol {
				t.Fatalf("tick %d: balls %d and %d overlap by %g", sim.Tick(), a.ID, b.ID, overlap)
			}
		}
	}
}

func TestNewSimulationDefaults(t *testing.T) {
	sim, err := NewSimulation(Options{})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if len(sim.Balls) != NumBalls || len(sim.Pockets) != NumPockets {
		t.Fatalf("got %d balls, %d pockets", len(sim.Balls), len(sim.Pockets))
	}
	if sim.Table.Length != TableLength || sim.Table.Width != TableLength/2 {
		t.Errorf("table = %+v", sim.Table)
	}
	for i, b := range sim.Balls {
		if b.ID != i || !b.Visible || b.Radius != BallRadius {
			t.Errorf("ball %d = %+v", i, b)
		}
	}
	if sim.Status() != StatusAtRest {
		t.Errorf("fresh rack status = %s", sim.Status())
	}
}

func TestHeadOnCollisionScenario(t *testing.T) {
	sim := newTwoBallSim(t)
	a, b := sim.Balls[0], sim.Balls[1]
	a.SetPosition(NewVector(1.0, 0.5, 0))
	a.SetVelocity(NewVector(1, 0, 0))
	b.SetPosition(NewVector(1.2, 0.5, 0))

	collided := false
	for i := 0; i < 60 && !collided; i++ {
		pre := a.Velocity.X
		sim.Step(FrameTime)

		if d := b.Position.Minus(a.Position).Length(); d < 2*BallRadius-1e-9 {
			t.Fatalf("tick %d: balls overlap, distance %.9f", sim.Tick(), d)
		}
		if countEvents(sim.DrainEvents(), EventBall) == 0 {
			continue
		}
		collided = true

		if sim.Tick() != 9 {
			t.Errorf("collision at tick %d, want 9", sim.Tick())
		}
		if a.Speed() != 0 {
			t.Errorf("striking ball velocity = %+v, want zero", a.Velocity)
		}
		if math.Abs(b.Velocity.X-pre*Damping) > 1e-9 || math.Abs(b.Velocity.Y) > 1e-12 {
			t.Errorf("struck ball velocity = %+v, want (%.6f, 0)", b.Velocity, pre*Damping)
		}
		if b.Velocity.X < 0.9 {
			t.Errorf("struck ball too slow: %f", b.Velocity.X)
		}
	}
	if !collided {
		t.Fatal("no collision detected")
	}
}

func TestHiddenBallIsExcludedFromCollisions(t *testing.T) {
	sim := newTwoBallSim(t)
	a, b := sim.Balls[0], sim.Balls[1]
	a.SetPosition(NewVector(1.0, 0.5, 0))
	a.SetVelocity(NewVector(1, 0, 0))
	b.Visible = false
	b.SetPosition(NewVector(1.2, 0.5, 0))

	for i := 0; i < 30; i++ {
		sim.Step(FrameTime)
	}

	if n := countEvents(sim.DrainEvents(), EventBall); n != 0 {
		t.Errorf("%d ball collisions with a hidden ball", n)
	}
	if a.Position.X <= 1.2 {
		t.Errorf("cue ball stopped at x=%f, should have passed through", a.Position.X)
	}
	if b.Visible {
		t.Error("hidden ball became visible")
	}
	if b.Position.X != 1.2 {
		t.Errorf("hidden ball moved to x=%f", b.Position.X)
	}
}

func TestCaptureIsPermanent(t *testing.T) {
	sim, err := NewSimulation(Options{NumBalls: 3})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	b := sim.Balls[1]
	b.SetPosition(NewVector(0.05, 0.05, 0))
	b.SetVelocity(NewVector(-1, -1, 0))

	for i := 0; i < 10; i++ {
		sim.Step(FrameTime)
	}
	if b.Visible {
		t.Fatal("ball aimed into the corner pocket was not captured")
	}
	if countEvents(sim.DrainEvents(), EventPocket) != 1 {
		t.Error("expected exactly one pocket event")
	}

	// Park the hidden ball in front of the moving cue ball.
	cue := sim.CueBall()
	cue.SetPosition(NewVector(0.5, 0.7, 0))
	cue.SetVelocity(NewVector(2, 0, 0))
	b.SetPosition(NewVector(0.6, 0.7, 0))

	for i := 0; i < 300; i++ {
		sim.Step(FrameTime)
		if b.Visible {
			t.Fatalf("tick %d: captured ball reappeared", sim.Tick())
		}
	}
	for _, e := range sim.DrainEvents() {
		if e.Type == EventBall && (e.BallID == b.ID || e.TargetID == b.ID) {
			t.Errorf("captured ball took part in a collision: %+v", e)
		}
	}
}

func TestCueBallSurvivesPocketWindow(t *testing.T) {
	sim := newTwoBallSim(t)
	cue := sim.CueBall()
	cue.SetPosition(NewVector(0.05, 0.05, 0))
	cue.SetVelocity(NewVector(-1, -1, 0))

	for i := 0; i < 30; i++ {
		sim.Step(FrameTime)
		if !cue.Visible {
			t.Fatalf("tick %d: cue ball captured", sim.Tick())
		}
		assertContained(t, sim)
	}
	if cue.Velocity.X <= 0 || cue.Velocity.Y <= 0 {
		t.Errorf("cue ball did not rebound out of the corner: %+v", cue.Velocity)
	}
}

func TestSleepThresholdZeroesVelocity(t *testing.T) {
	sim := newTwoBallSim(t)
	b := sim.Balls[1]
	b.SetVelocity(NewVector(SleepSpeed, 0, 0))

	sim.Step(FrameTime)
	if !b.Velocity.IsZero() {
		t.Fatalf("velocity = %+v, want exactly zero", b.Velocity)
	}

	rest := b.Position
	for i := 0; i < 10; i++ {
		sim.Step(FrameTime)
	}
	if !b.Velocity.IsZero() || b.Position != rest {
		t.Errorf("ball drifted after sleeping: pos=%+v vel=%+v", b.Position, b.Velocity)
	}
}

func TestDampingDecaysToRest(t *testing.T) {
	sim := newTwoBallSim(t)
	b := sim.Balls[1]
	b.SetVelocity(NewVector(2e-5, 0, 0))

	for i := 0; i < 500; i++ {
		prev := b.Speed()
		sim.Step(FrameTime)
		speed := b.Speed()
		if speed == 0 {
			if prev*Damping >= SleepSpeed {
				t.Errorf("ball put to sleep early at speed %g", prev)
			}
			return
		}
		if speed < SleepSpeed {
			t.Fatalf("tick %d: speed %g below threshold but not zero", sim.Tick(), speed)
		}
		if speed >= prev {
			t.Fatalf("tick %d: speed did not decay (%g -> %g)", sim.Tick(), prev, speed)
		}
	}
	t.Fatal("ball never came to rest")
}

func TestBreakShotScattersAndStaysOnTable(t *testing.T) {
	sim, err := NewSimulation(DefaultOptions())
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	rack := sim.Snapshot()
	sim.ApplyCueShot(1.0, 90)

	var events []CollisionEvent
	for i := 0; i < 600; i++ {
		sim.Step(FrameTime)
		events = append(events, sim.DrainEvents()...)
		assertContained(t, sim)
		assertSeparated(t, sim, 1e-9)
	}

	if n := countEvents(events, EventBall); n < 3 {
		t.Errorf("expected at least 3 ball-ball collisions on break, got %d", n)
	}
	if !sim.CueBall().Visible {
		t.Error("cue ball was captured")
	}

	moved := 0
	for i := 1; i < len(sim.Balls); i++ {
		start := NewVector(rack.Balls[i].X, rack.Balls[i].Y, 0)
		if sim.Balls[i].Position.Minus(start).Length() > BallRadius {
			moved++
		}
	}
	if moved < 4 {
		t.Errorf("expected at least 4 object balls to move on break, got %d", moved)
	}
}

func TestBreakSweepKeepsBallsApart(t *testing.T) {
	for _, power := range []float64{0.3, 0.7, 1.0} {
		for angle := 60; angle <= 120; angle += 10 {
			sim, err := NewSimulation(DefaultOptions())
			if err != nil {
				t.Fatalf("NewSimulation: %v", err)
			}
			sim.ApplyCueShot(power, angle)
			for i := 0; i < 900 && !sim.AllStopped(); i++ {
				sim.Step(FrameTime)
				assertContained(t, sim)
				assertSeparated(t, sim, 1e-9)
			}
			if !sim.CueBall().Visible {
				t.Errorf("power %.1f angle %d: cue ball captured", power, angle)
			}
		}
	}
}

func TestRerackRestoresOpeningPositions(t *testing.T) {
	sim, err := NewSimulation(DefaultOptions())
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	opening := sim.Snapshot()

	sim.ApplyCueShot(1.0, 90)
	sim.Advance(0.5)
	sim.Advance(FrameTime / 2)
	if sim.Tick() == 0 || sim.Snapshot().Alpha == 0 {
		t.Fatalf("setup: tick=%d alpha=%f", sim.Tick(), sim.Snapshot().Alpha)
	}

	if err := sim.Rerack(); err != nil {
		t.Fatalf("Rerack: %v", err)
	}
	snap := sim.Snapshot()
	if snap.Tick != 0 || snap.Alpha != 0 || snap.Status != StatusAtRest {
		t.Errorf("after rerack: tick=%d alpha=%f status=%s", snap.Tick, snap.Alpha, snap.Status)
	}
	for i, b := range snap.Balls {
		if b != opening.Balls[i] {
			t.Errorf("ball %d = %+v, want %+v", i, b, opening.Balls[i])
		}
	}
	if len(sim.DrainEvents()) != 0 {
		t.Error("event log survived the rerack")
	}
}

func TestSnapshotReportsAlpha(t *testing.T) {
	sim, err := NewSimulation(Options{NumBalls: 2, TickTime: 0.25, MaxCatchUp: 1})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	sim.Advance(0.3)
	if a := sim.Snapshot().Alpha; math.Abs(a-0.2) > 1e-9 {
		t.Errorf("alpha = %f, want 0.2", a)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Vector {
		sim, err := NewSimulation(DefaultOptions())
		if err != nil {
			t.Fatalf("NewSimulation: %v", err)
		}
		sim.ApplyCueShot(0.8, 95)
		sim.RunUntilStopped(3000)
		out := make([]Vector, len(sim.Balls))
		for i, b := range sim.Balls {
			out[i] = b.Position
		}
		return out
	}

	r1, r2 := run(), run()
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Errorf("ball %d: run1=%+v run2=%+v", i, r1[i], r2[i])
		}
	}
}

func TestRunUntilStopped(t *testing.T) {
	sim := newTwoBallSim(t)
	sim.ApplyCueShot(0.5, 0)
	if sim.Status() != StatusInMotion {
		t.Fatalf("status after shot = %s", sim.Status())
	}

	ticks := sim.RunUntilStopped(5000)
	if !sim.AllStopped() {
		t.Fatalf("still moving after %d ticks", ticks)
	}
	if ticks == 0 {
		t.Error("expected some ticks to run")
	}
}

func TestAdvanceRunsFixedTicks(t *testing.T) {
	sim, err := NewSimulation(Options{NumBalls: 2, TickTime: 0.25, MaxCatchUp: 1})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	if n := sim.Advance(0.6); n != 2 {
		t.Errorf("Advance(0.6) ran %d ticks, want 2", n)
	}
	// A long stall is capped at MaxCatchUp; the 0.1s carried over still counts.
	if n := sim.Advance(10); n != 4 {
		t.Errorf("Advance(10) ran %d ticks, want 4", n)
	}
	if sim.Tick() != 6 {
		t.Errorf("tick = %d, want 6", sim.Tick())
	}
}

func TestSnapshotAndDrainEvents(t *testing.T) {
	sim := newTwoBallSim(t)
	b := sim.Balls[1]
	b.SetPosition(NewVector(0.05, 0.05, 0))
	b.SetVelocity(NewVector(-1, -1, 0))
	for i := 0; i < 5; i++ {
		sim.Step(FrameTime)
	}

	snap := sim.Snapshot()
	if snap.Tick != 5 || snap.Length != TableLength || snap.Width != TableLength/2 {
		t.Errorf("snapshot header = tick %d %fx%f", snap.Tick, snap.Length, snap.Width)
	}
	if snap.VisibleCount() != 1 || snap.Balls[1].Visible {
		t.Errorf("visible = %d, ball 1 visible=%v", snap.VisibleCount(), snap.Balls[1].Visible)
	}
	if len(snap.Pockets) != NumPockets {
		t.Errorf("snapshot has %d pockets", len(snap.Pockets))
	}

	if len(sim.DrainEvents()) == 0 {
		t.Error("expected a pocket event")
	}
	if len(sim.DrainEvents()) != 0 {
		t.Error("DrainEvents did not clear the log")
	}
}
