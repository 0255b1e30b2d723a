package game

// Ball is a single ball's physical state.
type Ball struct {
	ID       int     `json:"id"`
	Radius   float64 `json:"radius"`
	Position Vector  `json:"position"`
	Velocity Vector  `json:"velocity"`
	Visible  bool    `json:"visible"`
}

// NewBall creates a visible ball at rest at the origin.
func NewBall(id int, radius float64) *Ball {
	return &Ball{ID: id, Radius: radius, Visible: true}
}

func (b *Ball) SetPosition(p Vector) {
	b.Position = p
}

func (b *Ball) SetVelocity(v Vector) {
	b.Velocity = v
}

// IsCue reports whether b is the cue ball, which can never be captured.
func (b *Ball) IsCue() bool {
	return b.ID == CueBallID
}

// Moving reports whether b is on the table and has non-zero velocity.
func (b *Ball) Moving() bool {
	return b.Visible && !b.Velocity.IsZero()
}

func (b *Ball) Speed() float64 {
	return b.Velocity.Length()
}
