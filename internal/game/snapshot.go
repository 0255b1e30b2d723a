package game

// BallState is a read-only view of a ball for renderers.
type BallState struct {
	ID      int     `json:"id" msgpack:"id"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	VX      float64 `json:"vx" msgpack:"vx"`
	VY      float64 `json:"vy" msgpack:"vy"`
	Radius  float64 `json:"radius" msgpack:"radius"`
	Visible bool    `json:"visible" msgpack:"visible"`
}

// PocketState is a read-only view of a pocket.
type PocketState struct {
	ID     int     `json:"id" msgpack:"id"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Radius float64 `json:"radius" msgpack:"radius"`
}

// Snapshot is a copy of everything a renderer needs for one frame. Coordinates
// are metres; multiply by MetersToCoord for pixels.
type Snapshot struct {
	Tick    uint64        `json:"tick" msgpack:"tick"`
	Alpha   float64       `json:"alpha" msgpack:"alpha"` // fraction of the next tick already elapsed
	Length  float64       `json:"length" msgpack:"length"`
	Width   float64       `json:"width" msgpack:"width"`
	Status  TableStatus   `json:"status" msgpack:"status"`
	Balls   []BallState   `json:"balls" msgpack:"balls"`
	Pockets []PocketState `json:"pockets" msgpack:"pockets"`
}

func (s *Simulation) Snapshot() Snapshot {
	balls := make([]BallState, len(s.Balls))
	for i, b := range s.Balls {
		balls[i] = BallState{
			ID:      b.ID,
			X:       b.Position.X,
			Y:       b.Position.Y,
			VX:      b.Velocity.X,
			VY:      b.Velocity.Y,
			Radius:  b.Radius,
			Visible: b.Visible,
		}
	}
	pockets := make([]PocketState, len(s.Pockets))
	for i, p := range s.Pockets {
		pockets[i] = PocketState{ID: p.ID, X: p.Position.X, Y: p.Position.Y, Radius: p.Radius}
	}
	return Snapshot{
		Tick:    s.tick,
		Alpha:   s.stepper.Alpha(),
		Length:  s.Table.Length,
		Width:   s.Table.Width,
		Status:  s.Status(),
		Balls:   balls,
		Pockets: pockets,
	}
}

// VisibleCount returns the number of balls still on the table.
func (snap Snapshot) VisibleCount() int {
	n := 0
	for _, b := range snap.Balls {
		if b.Visible {
			n++
		}
	}
	return n
}
