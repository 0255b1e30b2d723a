package game

// Physical constants for the simulation. Distances are metres, speeds are
// metres per second, matching a regulation 9-foot table.
const (
	TableLength  = 2.7
	BallRadius   = 0.028575 // 2 1/4 inch ball
	PocketRadius = 0.06
	NumBalls     = 16 // 0=cue, 1-15 object balls
	NumPockets   = 6
	CueBallID    = 0

	Damping        = 0.99 // per tick
	SleepSpeed     = 1e-5 // below this a ball is put to rest
	RackClearance  = 0.0005
	TickRate       = 60
	FrameTime      = 1.0 / TickRate
	MaxCatchUp     = 0.2 // seconds of wall clock a single Advance may simulate
	Epsilon        = 1e-6
	separationSlop = 1e-9

	// Screen mapping used by renderers: a 960px table for TableLength metres.
	TablePixels   = 960.0
	MetersToCoord = TablePixels / TableLength

	// MaxForce is the full-power cue speed in table coordinate units per second.
	MaxForce = 3.0 * MetersToCoord

	// Cue input steps.
	PowerStep      = 0.1
	AngleStep      = 20
	DefaultAngle   = 90
	MaxPower       = 1.0
	MaxRelaxPasses = 256
)
