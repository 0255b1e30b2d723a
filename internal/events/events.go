// Package events fans collision events out of a table session.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/playmatatu/billiard/internal/game"
	"github.com/redis/go-redis/v9"
)

const TypeCollisions = "collision_events"

// Payload is one batch of events drained from the simulation.
type Payload struct {
	Type   string                `json:"type" msgpack:"type"`
	Tick   uint64                `json:"tick" msgpack:"tick"`
	Events []game.CollisionEvent `json:"events" msgpack:"events"`
}

func NewPayload(tick uint64, events []game.CollisionEvent) Payload {
	return Payload{Type: TypeCollisions, Tick: tick, Events: events}
}

// Publisher receives every non-empty batch of collision events.
type Publisher interface {
	Publish(ctx context.Context, p Payload) error
}

// LogPublisher writes events to the standard logger.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, p Payload) error {
	for _, e := range p.Events {
		log.Printf("[EVENTS] tick=%d type=%s ball=%d target=%d speed=%.3f", e.Tick, e.Type, e.BallID, e.TargetID, e.Speed)
	}
	return nil
}

// RedisPublisher publishes each batch as JSON on a pub/sub channel.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (rp *RedisPublisher) Publish(ctx context.Context, p Payload) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	n, err := rp.rdb.Publish(ctx, rp.channel, b).Result()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", rp.channel, err)
	}
	log.Printf("[EVENTS] published tick=%d events=%d subscribers=%d", p.Tick, len(p.Events), n)
	return nil
}

// Multi publishes to every publisher in turn and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, p Payload) error {
	var errs []error
	for _, pub := range m {
		if err := pub.Publish(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DecodePayload parses a message received from the events channel.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, err
	}
	if p.Type != TypeCollisions {
		return Payload{}, fmt.Errorf("unexpected payload type %q", p.Type)
	}
	return p, nil
}

// Subscribe relays batches published on channel to pub until ctx is done.
func Subscribe(ctx context.Context, rdb *redis.Client, channel string, pub Publisher) {
	pubsub := rdb.Subscribe(ctx, channel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[EVENTS] %s subscriber started", channel)
		for {
			select {
			case <-ctx.Done():
				log.Printf("[EVENTS] %s subscriber stopping", channel)
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				p, err := DecodePayload([]byte(msg.Payload))
				if err != nil {
					log.Printf("[EVENTS] invalid event payload: %v", err)
					continue
				}
				if err := pub.Publish(ctx, p); err != nil {
					log.Printf("[EVENTS] relay failed: %v", err)
				}
			}
		}
	}()
}
