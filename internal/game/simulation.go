package game

import (
	"fmt"
	"log"
	"math"
)

// Options configures a Simulation. Zero fields take the package defaults.
type Options struct {
	TableLength  float64
	BallRadius   float64
	NumBalls     int
	PocketRadius float64
	NumPockets   int
	Damping      float64
	SleepSpeed   float64
	MaxForce     float64 // full-power cue speed, table coordinate units per second
	TickTime     float64 // seconds per fixed tick
	MaxCatchUp   float64 // seconds
}

// DefaultOptions returns the regulation-table defaults.
func DefaultOptions() Options {
	return Options{
		TableLength:  TableLength,
		BallRadius:   BallRadius,
		NumBalls:     NumBalls,
		PocketRadius: PocketRadius,
		NumPockets:   NumPockets,
		Damping:      Damping,
		SleepSpeed:   SleepSpeed,
		MaxForce:     MaxForce,
		TickTime:     FrameTime,
		MaxCatchUp:   MaxCatchUp,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TableLength <= 0 {
		o.TableLength = d.TableLength
	}
	if o.BallRadius <= 0 {
		o.BallRadius = d.BallRadius
	}
	if o.NumBalls == 0 {
		o.NumBalls = d.NumBalls
	}
	if o.PocketRadius <= 0 {
		o.PocketRadius = d.PocketRadius
	}
	if o.NumPockets == 0 {
		o.NumPockets = d.NumPockets
	}
	if o.Damping <= 0 || o.Damping > 1 {
		o.Damping = d.Damping
	}
	if o.SleepSpeed <= 0 {
		o.SleepSpeed = d.SleepSpeed
	}
	if o.MaxForce <= 0 {
		o.MaxForce = d.MaxForce
	}
	if o.TickTime <= 0 {
		o.TickTime = d.TickTime
	}
	if o.MaxCatchUp <= 0 {
		o.MaxCatchUp = d.MaxCatchUp
	}
	return o
}

// Simulation is the complete table state: balls indexed by id, the table and
// its pockets. It is not safe for concurrent use; the frame driver owns it and
// must not start a Step before the previous one returns.
type Simulation struct {
	Table   Table
	Pockets []Pocket
	Balls   []*Ball

	engine   *CollisionEngine
	stepper  *FixedStepper
	damping  float64
	sleep    float64
	maxForce float64
	tick     uint64
	stepping bool
}

// NewSimulation racks a new game with the given options.
func NewSimulation(opts Options) (*Simulation, error) {
	opts = opts.withDefaults()
	return InitRack(opts.TableLength, opts.BallRadius, opts.NumBalls, opts.PocketRadius, opts.NumPockets, opts)
}

// InitRack builds the table and pockets and lays out the standard triangular
// rack. Only opts' dynamics fields (damping, sleep speed, force, timing) are
// consulted.
func InitRack(tableLength, ballRadius float64, numBalls int, pocketRadius float64, numPockets int, opts Options) (*Simulation, error) {
	if numPockets != NumPockets {
		return nil, fmt.Errorf("%w: pocket layout needs %d pockets, got %d", ErrInvalidRack, NumPockets, numPockets)
	}
	if tableLength <= 0 || pocketRadius <= 0 {
		return nil, fmt.Errorf("%w: table length %g, pocket radius %g", ErrInvalidRack, tableLength, pocketRadius)
	}
	opts = opts.withDefaults()

	table := NewTable(tableLength)
	positions, err := RackPositions(table, ballRadius, numBalls)
	if err != nil {
		return nil, err
	}

	balls := make([]*Ball, numBalls)
	for i := range balls {
		balls[i] = NewBall(i, ballRadius)
		balls[i].SetPosition(positions[i])
	}

	pockets := NewPockets(table, pocketRadius)
	return &Simulation{
		Table:    table,
		Pockets:  pockets,
		Balls:    balls,
		engine:   NewCollisionEngine(table, pockets),
		stepper:  NewFixedStepper(opts.TickTime, opts.MaxCatchUp),
		damping:  opts.Damping,
		sleep:    opts.SleepSpeed,
		maxForce: opts.MaxForce,
	}, nil
}

// Rerack puts every ball back in its opening position at rest and restarts
// the tick count, the event log and the frame accumulator.
func (s *Simulation) Rerack() error {
	radius := s.CueBall().Radius
	positions, err := RackPositions(s.Table, radius, len(s.Balls))
	if err != nil {
		return err
	}
	for i, b := range s.Balls {
		b.SetPosition(positions[i])
		b.Velocity.Reset()
		b.Visible = true
	}
	s.tick = 0
	s.engine.tick = 0
	s.engine.Events = s.engine.Events[:0]
	s.stepper.Reset()
	return nil
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// CueBall returns ball 0.
func (s *Simulation) CueBall() *Ball {
	return s.Balls[CueBallID]
}

// Step advances the simulation by frameTime seconds: free motion, then edge
// and pocket tests, then every unordered pair of visible balls, then damping.
// Every ball is integrated before any pair test so the time-of-impact rewind
// in ResolvePair starts from both balls' frame-end positions.
func (s *Simulation) Step(frameTime float64) {
	if s.stepping {
		log.Printf("[PHYSICS] Step called during tick %d, ignored", s.tick)
		return
	}
	s.stepping = true
	defer func() { s.stepping = false }()

	s.tick++
	s.engine.tick = s.tick

	for _, b := range s.Balls {
		if b.Visible && !b.Velocity.IsZero() {
			b.Position = b.Position.Plus(b.Velocity.Times(frameTime))
		}
	}

	for _, b := range s.Balls {
		s.engine.ResolveBoundary(b)
	}

	for i, a := range s.Balls {
		if !a.Visible {
			continue
		}
		for _, b := range s.Balls[i+1:] {
			if !b.Visible {
				continue
			}
			s.engine.ResolvePair(a, b, frameTime)
		}
	}

	s.relax()

	for _, b := range s.Balls {
		if !b.Visible {
			continue
		}
		b.Velocity = b.Velocity.Times(s.damping)
		if b.Speed() < s.sleep {
			b.Velocity.Reset()
		}
	}
}

// relax removes overlap left behind by chains of contacts resolved in a single
// tick. It repeats until a full pass finds no overlapping pair, keeping every
// visible ball on the table throughout.
func (s *Simulation) relax() {
	for _, b := range s.Balls {
		if b.Visible {
			s.engine.contain(b)
		}
	}
	for pass := 0; pass < MaxRelaxPasses; pass++ {
		moved := false
		for i, a := range s.Balls {
			if !a.Visible {
				continue
			}
			for _, b := range s.Balls[i+1:] {
				if b.Visible && s.engine.separateWithin(a, b) {
					moved = true
				}
			}
		}
		if !moved {
			return
		}
	}
	log.Printf("[PHYSICS] overlap left after %d relax passes at tick %d", MaxRelaxPasses, s.tick)
}

// Advance runs as many fixed ticks as elapsed wall-clock seconds allow,
// carrying the remainder to the next call. It returns the number of ticks run.
func (s *Simulation) Advance(elapsed float64) int {
	return s.stepper.Advance(elapsed, s.Step)
}

// ApplyCueShot sets the cue ball's velocity from a power in [0,1] and an angle
// in degrees measured clockwise from +y. Power is clamped and the angle is
// wrapped into [0,360).
func (s *Simulation) ApplyCueShot(power float64, angleDegrees int) {
	power = math.Max(0, math.Min(MaxPower, power))
	angle := WrapAngle(angleDegrees)

	speed := power * s.maxForce / MetersToCoord
	rad := float64(angle) * math.Pi / 180
	s.CueBall().SetVelocity(NewVector(math.Sin(rad)*speed, math.Cos(rad)*speed, 0))
}

// WrapAngle maps degrees into [0,360).
func WrapAngle(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AllStopped reports whether every visible ball is at rest.
func (s *Simulation) AllStopped() bool {
	for _, b := range s.Balls {
		if b.Moving() {
			return false
		}
	}
	return true
}

// Status reports whether a shot is still playing out.
func (s *Simulation) Status() TableStatus {
	if s.AllStopped() {
		return StatusAtRest
	}
	return StatusInMotion
}

// DrainEvents returns the collision events recorded since the last call.
func (s *Simulation) DrainEvents() []CollisionEvent {
	events := s.engine.Events
	s.engine.Events = make([]CollisionEvent, 0, len(events))
	return events
}

// RunUntilStopped steps until every ball is at rest or maxTicks is reached,
// returning the number of ticks taken.
func (s *Simulation) RunUntilStopped(maxTicks int) int {
	n := 0
	for n < maxTicks && !s.AllStopped() {
		s.Step(s.stepper.Tick)
		n++
	}
	return n
}
