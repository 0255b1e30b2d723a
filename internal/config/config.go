package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/playmatatu/billiard/internal/game"
)

type Config struct {
	// Environment
	Environment string

	// Redis
	RedisURL      string
	EventsChannel string

	// Server
	Port        string
	FrontendURL string

	// Table
	TableLength  float64
	BallRadius   float64
	NumBalls     int
	PocketRadius float64

	// Simulation
	TickRate       int
	BroadcastHz    int
	MaxCatchUpMs   int
	Damping        float64
	SleepSpeed     float64
	MaxForce       float64 // metres per second at full power
	SnapshotFormat string  // "json" or "msgpack"
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		EventsChannel: getEnv("EVENTS_CHANNEL", "table_events"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Table
		TableLength:  getEnvFloat("TABLE_LENGTH", game.TableLength),
		BallRadius:   getEnvFloat("BALL_RADIUS", game.BallRadius),
		NumBalls:     getEnvInt("NUM_BALLS", game.NumBalls),
		PocketRadius: getEnvFloat("POCKET_RADIUS", game.PocketRadius),

		// Simulation
		TickRate:       getEnvInt("TICK_RATE", game.TickRate),
		BroadcastHz:    getEnvInt("BROADCAST_HZ", 30),
		MaxCatchUpMs:   getEnvInt("MAX_CATCH_UP_MS", 200),
		Damping:        getEnvFloat("DAMPING", game.Damping),
		SleepSpeed:     getEnvFloat("SLEEP_SPEED", game.SleepSpeed),
		MaxForce:       getEnvFloat("MAX_FORCE", game.MaxForce/game.MetersToCoord),
		SnapshotFormat: getEnv("SNAPSHOT_FORMAT", "json"),
	}
}

// SimulationOptions converts the table and simulation settings into options
// for game.NewSimulation.
func (c *Config) SimulationOptions() game.Options {
	tickRate := c.TickRate
	if tickRate <= 0 {
		tickRate = game.TickRate
	}
	return game.Options{
		TableLength:  c.TableLength,
		BallRadius:   c.BallRadius,
		NumBalls:     c.NumBalls,
		PocketRadius: c.PocketRadius,
		NumPockets:   game.NumPockets,
		Damping:      c.Damping,
		SleepSpeed:   c.SleepSpeed,
		MaxForce:     c.MaxForce * game.MetersToCoord,
		TickTime:     1.0 / float64(tickRate),
		MaxCatchUp:   float64(c.MaxCatchUpMs) / 1000,
	}
}

// TickInterval is the wall-clock period of the session ticker.
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / game.TickRate
	}
	return time.Second / time.Duration(c.TickRate)
}

// BroadcastEvery is the number of ticks between snapshot broadcasts.
func (c *Config) BroadcastEvery() int {
	if c.BroadcastHz <= 0 || c.TickRate <= 0 {
		return 1
	}
	n := c.TickRate / c.BroadcastHz
	if n <= 0 {
		n = 1
	}
	return n
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
