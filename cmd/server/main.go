package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/playmatatu/billiard/internal/api"
	"github.com/playmatatu/billiard/internal/config"
	"github.com/playmatatu/billiard/internal/events"
	"github.com/playmatatu/billiard/internal/redis"
	"github.com/playmatatu/billiard/internal/table"
	"github.com/playmatatu/billiard/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Rack the table
	sess, err := table.NewSession(table.Options{
		Simulation:     cfg.SimulationOptions(),
		TickInterval:   cfg.TickInterval(),
		BroadcastEvery: cfg.BroadcastEvery(),
	}, nil)
	if err != nil {
		log.Fatalf("Failed to rack table: %v", err)
	}

	hub := ws.NewHub(sess)
	sess.SetBroadcaster(hub)
	go hub.Run(ctx)

	// With Redis, collision events go out on the events channel and come back
	// to the hub through the subscriber; without it they go straight to the hub.
	if cfg.RedisURL != "" {
		rdb, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		sess.SetPublisher(events.NewRedisPublisher(rdb, cfg.EventsChannel))
		events.Subscribe(ctx, rdb, cfg.EventsChannel, hub)
		log.Printf("[REDIS] Table events on channel %s", cfg.EventsChannel)
	} else {
		sess.SetPublisher(events.Multi{events.LogPublisher{}, hub})
		log.Printf("[REDIS] REDIS_URL not set; table events are logged only")
	}

	go sess.Run(ctx)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, sess, hub, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting billiard table server on port %s", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Println("Server stopped")
}
