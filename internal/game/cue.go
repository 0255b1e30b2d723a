package game

import (
	"errors"
	"log"
	"math"
)

var (
	ErrNoPower        = errors.New("cue power must be raised before shooting")
	ErrShotInProgress = errors.New("a shot is already in progress")
	ErrCueBallMissing = errors.New("cue ball is not on the table")
)

// ShotParams is a resolved cue shot.
type ShotParams struct {
	Power float64 `json:"power" msgpack:"power"` // 0-1
	Angle int     `json:"angle" msgpack:"angle"` // degrees clockwise from +y
}

// CueControl accumulates aim and power from discrete UI input. Power is only
// consumed when a shot is taken.
type CueControl struct {
	Power float64 `json:"power" msgpack:"power"`
	Angle int     `json:"angle" msgpack:"angle"`
}

func NewCueControl() *CueControl {
	return &CueControl{Angle: DefaultAngle}
}

func (c *CueControl) IncreasePower() {
	c.Power = roundPower(math.Min(MaxPower, c.Power+PowerStep))
}

func (c *CueControl) DecreasePower() {
	c.Power = roundPower(math.Max(0, c.Power-PowerStep))
}

// roundPower keeps repeated 0.1 steps from drifting off the grid.
func roundPower(p float64) float64 {
	return math.Round(p*1000) / 1000
}

func (c *CueControl) RotateLeft() {
	c.Angle = WrapAngle(c.Angle - AngleStep)
}

func (c *CueControl) RotateRight() {
	c.Angle = WrapAngle(c.Angle + AngleStep)
}

// ValidateCanShoot checks the table and the accumulated power.
func (c *CueControl) ValidateCanShoot(s *Simulation) error {
	if c.Power <= 0 {
		return ErrNoPower
	}
	if !s.CueBall().Visible {
		return ErrCueBallMissing
	}
	if !s.AllStopped() {
		return ErrShotInProgress
	}
	return nil
}

// Shoot fires the cue ball with the accumulated power and aim, then resets the
// power to zero. Aim is kept for the next shot.
func (c *CueControl) Shoot(s *Simulation) (ShotParams, error) {
	if err := c.ValidateCanShoot(s); err != nil {
		return ShotParams{}, err
	}
	params := ShotParams{Power: c.Power, Angle: c.Angle}
	c.Power = 0

	s.ApplyCueShot(params.Power, params.Angle)
	log.Printf("[CUE] Shot at tick %d power=%.1f angle=%d", s.Tick(), params.Power, params.Angle)
	return params, nil
}
