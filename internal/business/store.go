package business

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists profiles as JSON in Redis.
type Store struct {
	redis *redis.Client
	now   func() time.Time
}

// NewStore creates a new profile store.
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient, now: time.Now}
}

func (s *Store) key(orgID string) string {
	return fmt.Sprintf("business:profile:%s", orgID)
}

// Get retrieves a profile, returning the default when none is saved.
func (s *Store) Get(ctx context.Context, orgID string) (*Profile, error) {
	data, err := s.redis.Get(ctx, s.key(orgID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return DefaultProfile(orgID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("business: get profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("business: unmarshal profile: %w", err)
	}
	return &p, nil
}

// Set saves a profile and stamps UpdatedAt.
func (s *Store) Set(ctx context.Context, p *Profile) error {
	if p.OrgID == "" {
		return fmt.Errorf("business: org id required")
	}
	p.UpdatedAt = s.now().UTC()
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("business: marshal profile: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(p.OrgID), data, 0).Err(); err != nil {
		return fmt.Errorf("business: set profile: %w", err)
	}
	return nil
}
