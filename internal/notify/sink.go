package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"go-matching-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "match-events"

// Publisher is the part of *redis.Client the sink needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink publishes match events as JSON on a Redis pub/sub channel.
// Events are addressed to the seeker; RecipientOnline reflects presence.
type RedisSink struct {
	rdb      Publisher
	channel  string
	presence *Presence
}

func NewRedisSink(rdb Publisher, channel string, presence *Presence) *RedisSink {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisSink{rdb: rdb, channel: channel, presence: presence}
}

func (s *RedisSink) Publish(ctx context.Context, event domain.MatchEvent) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis sink not initialized")
	}
	event.RecipientOnline = s.presence.IsOnline(event.SeekerID)

	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode match event: %w", err)
	}
	if err := s.rdb.Publish(ctx, s.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish match event: %w", err)
	}
	return nil
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Publish(context.Context, domain.MatchEvent) error { return nil }
