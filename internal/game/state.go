package game

// TableStatus reports whether a shot is playing out.
type TableStatus string

const (
	StatusAtRest   TableStatus = "AT_REST"
	StatusInMotion TableStatus = "IN_MOTION"
)
