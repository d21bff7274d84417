package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go-matching-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPresenceKey is the Redis set of profile ids currently online.
	DefaultPresenceKey = "presence:online"
	// DefaultPresenceChannel carries PresenceEvent messages.
	DefaultPresenceChannel = "presence-events"
)

// PresenceEvent is published by the real-time gateway whenever a
// connection opens or closes.
type PresenceEvent struct {
	UserID string `json:"user_id"`
	Online bool   `json:"online"`
}

// PresenceStore is the part of *redis.Client the sync needs.
type PresenceStore interface {
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// PresenceSync keeps a Presence registry in step with the gateway's Redis
// set and event channel.
type PresenceSync struct {
	rdb      PresenceStore
	presence *Presence
	key      string
	channel  string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPresenceSync(rdb PresenceStore, presence *Presence, key, channel string) *PresenceSync {
	if key == "" {
		key = DefaultPresenceKey
	}
	if channel == "" {
		channel = DefaultPresenceChannel
	}
	return &PresenceSync{rdb: rdb, presence: presence, key: key, channel: channel}
}

// Load replaces the registry with the current members of the presence set.
func (s *PresenceSync) Load(ctx context.Context) error {
	ids, err := s.rdb.SMembers(ctx, s.key).Result()
	if err != nil {
		return fmt.Errorf("load presence set %s: %w", s.key, err)
	}
	s.presence.Populate(ids)
	logger.Log.Infow("Presence loaded", "online", len(ids))
	return nil
}

// Start subscribes to the presence channel, then loads the snapshot so no
// change between the two is lost. Events are applied until Stop.
func (s *PresenceSync) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	sub := s.rdb.Subscribe(ctx, s.channel)
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		_ = sub.Close()
		return fmt.Errorf("redis subscribe %s: %w", s.channel, err)
	}
	if err := s.Load(ctx); err != nil {
		cancel()
		_ = sub.Close()
		return err
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.cancel, s.done = cancel, done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				s.Apply(m.Payload)
			}
		}
	}()
	return nil
}

// Apply updates the registry from one channel message. Malformed messages
// are logged and ignored.
func (s *PresenceSync) Apply(payload string) {
	var ev PresenceEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil || ev.UserID == "" {
		logger.Log.Warnw("Bad presence payload", "payload", payload, "error", err)
		return
	}
	if ev.Online {
		s.presence.Connect(ev.UserID)
		return
	}
	s.presence.Disconnect(ev.UserID)
}

// Stop ends the subscription, waits for the listener and clears the
// registry. Safe to call without Start.
func (s *PresenceSync) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	s.presence.Clear()
}
