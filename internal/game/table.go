package game

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRack is returned when rack parameters cannot produce a legal layout.
var ErrInvalidRack = errors.New("invalid rack")

// Table is the rectangular play area [0,Length] x [0,Width].
type Table struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// NewTable creates a table whose width is half its length.
func NewTable(length float64) Table {
	return Table{Length: length, Width: length / 2}
}

// Pocket is a capture zone on the table edge.
type Pocket struct {
	ID       int     `json:"id"`
	Position Vector  `json:"position"`
	Radius   float64 `json:"radius"`
}

// Pocket indices. 0-2 run left to right along y=0, 3-5 along y=Width.
const (
	PocketTopLeft = iota
	PocketTopMiddle
	PocketTopRight
	PocketBottomLeft
	PocketBottomMiddle
	PocketBottomRight
)

// NewPockets lays out the six pockets: the four corners and the midpoints of
// the two long edges, spaced Width (= Length/2) apart along x.
func NewPockets(t Table, radius float64) []Pocket {
	pockets := make([]Pocket, 0, NumPockets)
	for row, y := range []float64{0, t.Width} {
		for col := 0; col < 3; col++ {
			pockets = append(pockets, Pocket{
				ID:       row*3 + col,
				Position: NewVector(float64(col)*t.Width, y, 0),
				Radius:   radius,
			})
		}
	}
	return pockets
}

// inWindow reports whether coordinate c lies inside the pocket's capture
// window along the given axis. The window is inclusive at both ends.
func (p Pocket) inWindow(c float64, axis int) bool {
	center := p.Position.X
	if axis == axisY {
		center = p.Position.Y
	}
	return c >= center-p.Radius && c <= center+p.Radius
}

// RackPositions returns the starting position of every ball: the cue ball at
// quarter length on the centre line, the object balls in a triangle whose apex
// sits at three-quarter length. Rows are sqrt(3)*r apart, balls within a row
// 2*r apart, each spacing widened by RackClearance.
func RackPositions(t Table, radius float64, numBalls int) ([]Vector, error) {
	if numBalls < 1 {
		return nil, fmt.Errorf("%w: need at least the cue ball, got %d balls", ErrInvalidRack, numBalls)
	}
	if radius <= 0 || radius*2 >= t.Width {
		return nil, fmt.Errorf("%w: radius %g does not fit table width %g", ErrInvalidRack, radius, t.Width)
	}

	centerY := t.Width / 2
	pos := make([]Vector, numBalls)
	pos[CueBallID] = NewVector(t.Length/4, centerY, 0)

	spacing := 2*radius + RackClearance
	rowStep := spacing * math.Sqrt(3) / 2
	apexX := t.Length * 3 / 4

	id := 1
	for row := 0; id < numBalls; row++ {
		x := apexX + float64(row)*rowStep
		for col := 0; col <= row && id < numBalls; col++ {
			y := centerY + (float64(col)-float64(row)/2)*spacing
			pos[id] = NewVector(x, y, 0)
			id++
		}
	}

	for i, p := range pos {
		if p.X < radius || p.X > t.Length-radius || p.Y < radius || p.Y > t.Width-radius {
			return nil, fmt.Errorf("%w: ball %d at (%.4f, %.4f) is off the table", ErrInvalidRack, i, p.X, p.Y)
		}
	}
	return pos, nil
}
