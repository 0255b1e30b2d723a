// Package table drives one billiard simulation in real time and fans its
// state out to renderers.
package table

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/playmatatu/billiard/internal/events"
	"github.com/playmatatu/billiard/internal/game"
)

var ErrUnknownAction = errors.New("unknown cue action")

// Cue adjustment actions accepted by Adjust.
const (
	ActionPowerUp     = "power_up"
	ActionPowerDown   = "power_down"
	ActionRotateLeft  = "rotate_left"
	ActionRotateRight = "rotate_right"
)

// Broadcaster receives a snapshot every broadcast period and after every
// change made through the session.
type Broadcaster interface {
	BroadcastSnapshot(snap game.Snapshot)
}

type Options struct {
	Simulation     game.Options
	TickInterval   time.Duration
	BroadcastEvery int // ticks between snapshot broadcasts
}

// Session owns a Simulation and its CueControl. All access goes through the
// session mutex; the simulation itself is never shared.
type Session struct {
	mu          sync.Mutex
	opts        Options
	sim         *game.Simulation
	cue         *game.CueControl
	sinceSent   int
	broadcaster Broadcaster
	publisher   events.Publisher
}

func NewSession(opts Options, publisher events.Publisher) (*Session, error) {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / game.TickRate
	}
	if opts.BroadcastEvery <= 0 {
		opts.BroadcastEvery = 1
	}
	if publisher == nil {
		publisher = events.LogPublisher{}
	}

	sim, err := game.NewSimulation(opts.Simulation)
	if err != nil {
		return nil, err
	}
	return &Session{
		opts:      opts,
		sim:       sim,
		cue:       game.NewCueControl(),
		publisher: publisher,
	}, nil
}

// SetBroadcaster attaches the snapshot consumer. It must be called before Run.
func (s *Session) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	s.broadcaster = b
	s.mu.Unlock()
}

// SetPublisher replaces the collision event publisher. It must be called
// before Run.
func (s *Session) SetPublisher(p events.Publisher) {
	s.mu.Lock()
	s.publisher = p
	s.mu.Unlock()
}

// Run advances the simulation on a ticker until ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	log.Printf("[TABLE] Session started (tick=%v broadcast_every=%d)", s.opts.TickInterval, s.opts.BroadcastEvery)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Println("[TABLE] Session stopping")
			return
		case now := <-ticker.C:
			s.Frame(ctx, now.Sub(last))
			last = now
		}
	}
}

// Frame advances the simulation by elapsed wall-clock time, publishes any
// collision events, and broadcasts a snapshot when the broadcast period has
// passed. It returns the number of ticks run.
func (s *Session) Frame(ctx context.Context, elapsed time.Duration) int {
	s.mu.Lock()
	n := s.sim.Advance(elapsed.Seconds())
	drained := s.sim.DrainEvents()
	tick := s.sim.Tick()

	var snap *game.Snapshot
	s.sinceSent += n
	if n > 0 && s.sinceSent >= s.opts.BroadcastEvery {
		s.sinceSent = 0
		v := s.sim.Snapshot()
		snap = &v
	}
	b := s.broadcaster
	pub := s.publisher
	s.mu.Unlock()

	if len(drained) > 0 {
		if err := pub.Publish(ctx, events.NewPayload(tick, drained)); err != nil {
			log.Printf("[TABLE] publish events failed at tick %d: %v", tick, err)
		}
	}
	if snap != nil && b != nil {
		b.BroadcastSnapshot(*snap)
	}
	return n
}

func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Snapshot()
}

// Cue returns a copy of the current aim and power.
func (s *Session) Cue() game.CueControl {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cue
}

// Adjust applies one discrete cue input.
func (s *Session) Adjust(action string) (game.CueControl, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch action {
	case ActionPowerUp:
		s.cue.IncreasePower()
	case ActionPowerDown:
		s.cue.DecreasePower()
	case ActionRotateLeft:
		s.cue.RotateLeft()
	case ActionRotateRight:
		s.cue.RotateRight()
	default:
		return *s.cue, ErrUnknownAction
	}
	return *s.cue, nil
}

// Shoot fires the accumulated cue power and aim.
func (s *Session) Shoot() (game.ShotParams, error) {
	s.mu.Lock()
	params, err := s.cue.Shoot(s.sim)
	s.mu.Unlock()
	if err != nil {
		return params, err
	}
	s.broadcastNow()
	return params, nil
}

// ApplyShot fires the cue ball with explicit parameters, bypassing the
// accumulated power. Power is clamped to [0,1] and the angle wrapped.
func (s *Session) ApplyShot(power float64, angle int) (game.ShotParams, error) {
	cue := game.CueControl{
		Power: math.Max(0, math.Min(game.MaxPower, power)),
		Angle: game.WrapAngle(angle),
	}
	s.mu.Lock()
	params, err := cue.Shoot(s.sim)
	s.mu.Unlock()
	if err != nil {
		return params, err
	}
	s.broadcastNow()
	return params, nil
}

// Rerack returns the table to the opening rack. Aim is kept and power reset.
func (s *Session) Rerack() error {
	s.mu.Lock()
	err := s.sim.Rerack()
	s.cue.Power = 0
	s.sinceSent = 0
	s.mu.Unlock()
	if err != nil {
		return err
	}

	log.Println("[TABLE] Re-racked")
	s.broadcastNow()
	return nil
}

func (s *Session) broadcastNow() {
	s.mu.Lock()
	snap := s.sim.Snapshot()
	b := s.broadcaster
	s.mu.Unlock()
	if b != nil {
		b.BroadcastSnapshot(snap)
	}
}
