package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sequenceKeyPrefix = "bookings:sequence:"

// Sequencer hands out the next booking sequence number for a year. Backed by
// Redis in production so numbers stay unique across instances.
type Sequencer interface {
	Next(ctx context.Context, year int) (int64, error)
}

// RedisSequencer implements Sequencer with an INCR per calendar year.
type RedisSequencer struct {
	client *redis.Client
}

func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{client: client}
}

func (s *RedisSequencer) Next(ctx context.Context, year int) (int64, error) {
	n, err := s.client.Incr(ctx, fmt.Sprintf("%s%d", sequenceKeyPrefix, year)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance booking sequence: %w", err)
	}
	return n, nil
}

// ReferenceGenerator produces human-readable booking numbers in the
// PREFIX-YEAR-NNN shape, e.g. TRV-2026-042. The counter resets each year; the
// padding widens automatically past 999.
type ReferenceGenerator struct {
	prefix string
	seq    Sequencer

	now func() time.Time // test seam
}

// NewReferenceGenerator creates a generator with the agency prefix.
func NewReferenceGenerator(prefix string, seq Sequencer) *ReferenceGenerator {
	if prefix == "" {
		prefix = "TRV"
	}
	return &ReferenceGenerator{prefix: prefix, seq: seq, now: time.Now}
}

// Next returns the next booking number.
func (g *ReferenceGenerator) Next(ctx context.Context) (string, error) {
	year := g.now().Year()
	n, err := g.seq.Next(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%03d", g.prefix, year, n), nil
}
