package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smukkama/temp-monitor/internal/protocol"
)

// LatestReadingStore keeps the most recent reading per sensor in Redis so a
// live-status consumer can answer "what is it reading now" without touching
// the database. Entries expire on their own if a sensor goes quiet.
type LatestReadingStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewLatestReadingStore creates a store with the given entry TTL
func NewLatestReadingStore(redisClient *redis.Client, ttl time.Duration) *LatestReadingStore {
	return &LatestReadingStore{redis: redisClient, ttl: ttl}
}

// Set stores the latest reading for a sensor
func (s *LatestReadingStore) Set(ctx context.Context, msg *protocol.ReadingMessage) error {
	key := fmt.Sprintf("latest_reading:%s", msg.SensorID)

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set reading in Redis: %w", err)
	}

	return nil
}

// Get retrieves the latest reading for a sensor; nil when none is stored
func (s *LatestReadingStore) Get(ctx context.Context, sensorID string) (*protocol.ReadingMessage, error) {
	key := fmt.Sprintf("latest_reading:%s", sensorID)

	data, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reading from Redis: %w", err)
	}

	var msg protocol.ReadingMessage
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reading: %w", err)
	}

	return &msg, nil
}

// NotificationLimiter suppresses duplicate notifications for the same sensor
// and target within a cooldown window, using SETNX with a TTL.
type NotificationLimiter struct {
	redis    *redis.Client
	cooldown time.Duration
}

// NewNotificationLimiter creates a limiter with the given cooldown window
func NewNotificationLimiter(redisClient *redis.Client, cooldown time.Duration) *NotificationLimiter {
	return &NotificationLimiter{redis: redisClient, cooldown: cooldown}
}

// Allow reports whether a notification for this sensor and target may be sent
// now. The first call in a window wins; subsequent calls return false until
// the window expires.
func (l *NotificationLimiter) Allow(ctx context.Context, sensorID string, target float64) (bool, error) {
	key := fmt.Sprintf("notify_cooldown:%s:%.2f", sensorID, target)

	ok, err := l.redis.SetNX(ctx, key, time.Now().Format(time.RFC3339), l.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set cooldown in Redis: %w", err)
	}

	return ok, nil
}
