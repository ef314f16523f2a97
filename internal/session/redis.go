package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pantryline/backend/internal/types"
)

// RedisTransport implements Transport on Redis pub/sub. Events travel on
// one pub/sub channel per list; presence lives in a hash keyed by a
// per-connection client id, with change notifications on a side channel.
type RedisTransport struct {
	client   *redis.Client
	prefix   string
	clientID string
	log      *zap.Logger
}

// NewRedisTransport wraps an existing Redis client. The client's
// lifecycle stays with the caller; Close does not close it.
func NewRedisTransport(client *redis.Client, prefix string, log *zap.Logger) *RedisTransport {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisTransport{
		client:   client,
		prefix:   prefix,
		clientID: uuid.NewString(),
		log:      log,
	}
}

func (t *RedisTransport) Connect(ctx context.Context) error {
	if err := t.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connect: %w", err)
	}
	return nil
}

func (t *RedisTransport) Channel(name string) Channel {
	return &redisChannel{
		transport: t,
		key:       t.prefix + ":" + name,
	}
}

func (t *RedisTransport) Close() error {
	return nil
}

type redisChannel struct {
	transport *RedisTransport
	key       string
}

func (c *redisChannel) eventsKey() string   { return c.key + ":events" }
func (c *redisChannel) presenceKey() string { return c.key + ":presence" }
func (c *redisChannel) notifyKey() string   { return c.key + ":presence:notify" }

func (c *redisChannel) Publish(ctx context.Context, event string, payload []byte) error {
	if err := c.transport.client.Publish(ctx, c.eventsKey(), payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}
	return nil
}

// Subscribe routes messages by the "type" field every payload carries, so
// all event types share one Redis channel.
func (c *redisChannel) Subscribe(ctx context.Context, event string, handler func(payload []byte)) (func(), error) {
	pubsub := c.transport.client.Subscribe(ctx, c.eventsKey())
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", event, err)
	}

	go func() {
		for msg := range pubsub.Channel() {
			var envelope struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				continue
			}
			if envelope.Type != event {
				continue
			}
			handler([]byte(msg.Payload))
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				c.transport.log.Debug("pubsub close", zap.Error(err))
			}
		})
	}, nil
}

func (c *redisChannel) Presence() Presence {
	return &redisPresence{channel: c}
}

type redisPresence struct {
	channel *redisChannel
}

func (p *redisPresence) Enter(ctx context.Context, member types.ActiveUser) error {
	data, err := json.Marshal(member)
	if err != nil {
		return err
	}
	client := p.channel.transport.client
	if err := client.HSet(ctx, p.channel.presenceKey(), p.channel.transport.clientID, data).Err(); err != nil {
		return fmt.Errorf("presence enter: %w", err)
	}
	return client.Publish(ctx, p.channel.notifyKey(), "enter").Err()
}

func (p *redisPresence) Leave(ctx context.Context) error {
	client := p.channel.transport.client
	if err := client.HDel(ctx, p.channel.presenceKey(), p.channel.transport.clientID).Err(); err != nil {
		return fmt.Errorf("presence leave: %w", err)
	}
	return client.Publish(ctx, p.channel.notifyKey(), "leave").Err()
}

func (p *redisPresence) Get(ctx context.Context) ([]types.ActiveUser, error) {
	values, err := p.channel.transport.client.HVals(ctx, p.channel.presenceKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("presence get: %w", err)
	}
	members := make([]types.ActiveUser, 0, len(values))
	for _, raw := range values {
		var member types.ActiveUser
		if err := json.Unmarshal([]byte(raw), &member); err != nil {
			// Schema-less payloads: narrow at the boundary, drop the rest.
			continue
		}
		members = append(members, member)
	}
	return members, nil
}

func (p *redisPresence) Subscribe(ctx context.Context, handler func()) (func(), error) {
	pubsub := p.channel.transport.client.Subscribe(ctx, p.channel.notifyKey())
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("presence subscribe: %w", err)
	}

	go func() {
		for range pubsub.Channel() {
			handler()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { _ = pubsub.Close() })
	}, nil
}
