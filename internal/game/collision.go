package game

import "math"

// Outcome is the result of a single collision test.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeBounced
	OutcomeCaptured
	OutcomeCollided
	OutcomeSeparated // overlapping pair pushed apart without exchanging momentum
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBounced:
		return "bounced"
	case OutcomeCaptured:
		return "captured"
	case OutcomeCollided:
		return "collided"
	case OutcomeSeparated:
		return "separated"
	default:
		return "none"
	}
}

// Event types recorded by the engine.
const (
	EventBall    = "ball"
	EventCushion = "cushion"
	EventPocket  = "pocket"
)

// CollisionEvent records a collision for renderers and event consumers.
type CollisionEvent struct {
	Tick     uint64  `json:"tick" msgpack:"tick"`
	Type     string  `json:"type" msgpack:"type"`           // "ball", "cushion", "pocket"
	BallID   int     `json:"ball_id" msgpack:"ball_id"`     //
	TargetID int     `json:"target_id" msgpack:"target_id"` // ball ID, edge, or pocket ID
	Speed    float64 `json:"speed" msgpack:"speed"`         // impact speed
}

// Table edges, in the order they are tested.
const (
	EdgeLeft = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

const (
	axisX = iota
	axisY
)

// edgePockets lists, per edge, the pockets whose mouths open onto it.
var edgePockets = [4][]int{
	EdgeLeft:   {PocketTopLeft, PocketBottomLeft},
	EdgeRight:  {PocketTopRight, PocketBottomRight},
	EdgeTop:    {PocketTopLeft, PocketTopMiddle, PocketTopRight},
	EdgeBottom: {PocketBottomLeft, PocketBottomMiddle, PocketBottomRight},
}

// CollisionEngine resolves wall, pocket and ball-ball contacts against a
// fixed table. It holds no per-tick state apart from the event log.
type CollisionEngine struct {
	Table   Table
	Pockets []Pocket
	Events  []CollisionEvent
	tick    uint64
}

func NewCollisionEngine(table Table, pockets []Pocket) *CollisionEngine {
	return &CollisionEngine{
		Table:   table,
		Pockets: pockets,
		Events:  make([]CollisionEvent, 0),
	}
}

func (ce *CollisionEngine) record(e CollisionEvent) {
	e.Tick = ce.tick
	ce.Events = append(ce.Events, e)
}

// crossedEdges returns, in test order, the edges whose boundary the ball's
// leading edge lies beyond.
func (ce *CollisionEngine) crossedEdges(b *Ball) []int {
	var edges []int
	if b.Position.X-b.Radius < 0 {
		edges = append(edges, EdgeLeft)
	}
	if b.Position.X+b.Radius > ce.Table.Length {
		edges = append(edges, EdgeRight)
	}
	if b.Position.Y-b.Radius < 0 {
		edges = append(edges, EdgeTop)
	}
	if b.Position.Y+b.Radius > ce.Table.Width {
		edges = append(edges, EdgeBottom)
	}
	return edges
}

// pocketAt returns the pocket on edge whose capture window contains the ball,
// or nil.
func (ce *CollisionEngine) pocketAt(b *Ball, edge int) *Pocket {
	c, axis := b.Position.Y, axisY
	if edge == EdgeTop || edge == EdgeBottom {
		c, axis = b.Position.X, axisX
	}
	for _, id := range edgePockets[edge] {
		if id >= len(ce.Pockets) {
			continue
		}
		if ce.Pockets[id].inWindow(c, axis) {
			return &ce.Pockets[id]
		}
	}
	return nil
}

// ResolveBoundary bounces b off every table edge it has crossed. A non-cue
// ball crossing an edge inside a pocket mouth is captured instead: it becomes
// invisible, stops, and no bounce is applied.
func (ce *CollisionEngine) ResolveBoundary(b *Ball) Outcome {
	if !b.Visible {
		return OutcomeNone
	}
	edges := ce.crossedEdges(b)
	if len(edges) == 0 {
		return OutcomeNone
	}

	if !b.IsCue() {
		for _, edge := range edges {
			if p := ce.pocketAt(b, edge); p != nil {
				ce.capture(b, p)
				return OutcomeCaptured
			}
		}
	}

	for _, edge := range edges {
		ce.bounce(b, edge)
	}
	return OutcomeBounced
}

func (ce *CollisionEngine) capture(b *Ball, p *Pocket) {
	speed := b.Speed()
	b.Visible = false
	b.Velocity.Reset()
	b.Position = p.Position
	ce.record(CollisionEvent{Type: EventPocket, BallID: b.ID, TargetID: p.ID, Speed: speed})
}

// bounce reflects the velocity component normal to edge if it points off the
// table, and pulls the ball back inside.
func (ce *CollisionEngine) bounce(b *Ball, edge int) {
	var speed float64
	switch edge {
	case EdgeLeft:
		speed = math.Abs(b.Velocity.X)
		b.Velocity.X = math.Abs(b.Velocity.X)
		b.Position.X = b.Radius
	case EdgeRight:
		speed = math.Abs(b.Velocity.X)
		b.Velocity.X = -math.Abs(b.Velocity.X)
		b.Position.X = ce.Table.Length - b.Radius
	case EdgeTop:
		speed = math.Abs(b.Velocity.Y)
		b.Velocity.Y = math.Abs(b.Velocity.Y)
		b.Position.Y = b.Radius
	case EdgeBottom:
		speed = math.Abs(b.Velocity.Y)
		b.Velocity.Y = -math.Abs(b.Velocity.Y)
		b.Position.Y = ce.Table.Width - b.Radius
	}
	ce.record(CollisionEvent{Type: EventCushion, BallID: b.ID, TargetID: edge, Speed: speed})
}

// converging reports whether a and b are closing along the line of centres.
func converging(a, b *Ball) bool {
	relVel := b.Velocity.Minus(a.Velocity)
	return relVel.Dot(b.Position.Minus(a.Position)) < 0
}

// ResolvePair detects and resolves a collision between a and b, both of which
// have already been advanced by frameTime along their velocities.
//
// The time of impact is found by linear interpolation between the frame-start
// and frame-end centre distances; both balls are rewound to that instant, their
// normal velocity components are exchanged (equal-mass elastic, frictionless),
// and they are advanced for the rest of the frame with the new velocities.
func (ce *CollisionEngine) ResolvePair(a, b *Ball, frameTime float64) Outcome {
	if a == b || !a.Visible || !b.Visible {
		return OutcomeNone
	}

	normalPlane := b.Position.Minus(a.Position)
	distanceAtFrameEnd := normalPlane.Length()
	collisionDistance := a.Radius + b.Radius
	if distanceAtFrameEnd > collisionDistance {
		return OutcomeNone
	}

	if !converging(a, b) {
		separate(a, b, normalPlane)
		return OutcomeSeparated
	}

	startA := a.Position.Minus(a.Velocity.Times(frameTime))
	startB := b.Position.Minus(b.Velocity.Times(frameTime))
	distanceAtFrameStart := startB.Minus(startA).Length()

	collisionTime := 0.0
	if distanceAtFrameStart > collisionDistance && distanceAtFrameStart > distanceAtFrameEnd {
		collisionTime = frameTime * (distanceAtFrameStart - collisionDistance) /
			(distanceAtFrameStart - distanceAtFrameEnd)
		collisionTime = math.Max(0, math.Min(frameTime, collisionTime))
	}

	contactA := startA.Plus(a.Velocity.Times(collisionTime))
	contactB := startB.Plus(b.Velocity.Times(collisionTime))

	normal := contactB.Minus(contactA).Normalize()
	if normal.IsZero() {
		normal = normalPlane.Normalize()
	}
	if normal.IsZero() {
		// Coincident centres; nothing defines a line of centres.
		normal = a.Velocity.Minus(b.Velocity).Normalize()
	}
	tangent := normal.LeftNormal()

	aNormal := a.Velocity.Dot(normal)
	aTangent := a.Velocity.Dot(tangent)
	bNormal := b.Velocity.Dot(normal)
	bTangent := b.Velocity.Dot(tangent)

	newA := normal.Times(bNormal).Plus(tangent.Times(aTangent))
	newB := normal.Times(aNormal).Plus(tangent.Times(bTangent))

	remaining := frameTime - collisionTime
	a.Position = contactA.Plus(newA.Times(remaining))
	b.Position = contactB.Plus(newB.Times(remaining))
	a.Velocity = newA
	b.Velocity = newB

	if d := b.Position.Minus(a.Position); d.Length() < collisionDistance {
		separate(a, b, d)
	}

	ce.record(CollisionEvent{Type: EventBall, BallID: a.ID, TargetID: b.ID, Speed: math.Abs(aNormal - bNormal)})
	return OutcomeCollided
}

// separate pushes a and b apart along d (b - a) until they just touch,
// splitting the correction evenly.
func separate(a, b *Ball, d Vector) {
	dist := d.Length()
	overlap := a.Radius + b.Radius - dist
	if overlap <= 0 {
		return
	}
	n := d.Normalize()
	if n.IsZero() {
		n = NewVector(1, 0, 0)
	}
	shift := n.Times(overlap/2 + separationSlop)
	a.Position = a.Position.Minus(shift)
	b.Position = b.Position.Plus(shift)
}

// separateWithin pushes an overlapping pair apart without leaving the table.
// Whatever share of the push a cushion absorbs from one ball is handed to the
// other. It reports whether the pair overlapped.
func (ce *CollisionEngine) separateWithin(a, b *Ball) bool {
	d := b.Position.Minus(a.Position)
	overlap := a.Radius + b.Radius - d.Length()
	if overlap <= 0 {
		return false
	}
	n := d.Normalize()
	if n.IsZero() {
		n = NewVector(1, 0, 0)
	}
	shift := n.Times(overlap/2 + separationSlop)
	a.Position = a.Position.Minus(shift)
	b.Position = b.Position.Plus(shift)

	lostA := ce.clampResidual(a)
	lostB := ce.clampResidual(b)
	a.Position = a.Position.Minus(lostB)
	b.Position = b.Position.Minus(lostA)
	ce.contain(a)
	ce.contain(b)
	return true
}

// clampResidual contains b and returns the displacement the clamp undid.
func (ce *CollisionEngine) clampResidual(b *Ball) Vector {
	before := b.Position
	ce.contain(b)
	return before.Minus(b.Position)
}

// contain clamps a visible ball's centre into the playable rectangle.
func (ce *CollisionEngine) contain(b *Ball) {
	b.Position.X = math.Max(b.Radius, math.Min(ce.Table.Length-b.Radius, b.Position.X))
	b.Position.Y = math.Max(b.Radius, math.Min(ce.Table.Width-b.Radius, b.Position.Y))
}
