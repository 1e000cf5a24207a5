package notify

import (
	"context"
	"encoding/json"

	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/redis/go-redis/v9"
)

// Publisher is the part of a redis client the sink needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink publishes events as JSON on a pub/sub channel for external
// delivery workers (email and the like).
type RedisSink struct {
	client  Publisher
	channel string
}

func NewRedisSink(client Publisher, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (s *RedisSink) Publish(ctx context.Context, e notification.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, data).Err()
}
