package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCartStore struct {
	client *redis.Client
	users  UserRepository
	prefix string
	now    func() time.Time
}

// NewRedisCartStore keeps each cart in a sorted set keyed by user id.
// Scores are insertion timestamps so Items preserves display order. Users
// live in Postgres, so every call first confirms the owner through users
// and passes pgx.ErrNoRows through for an unknown id.
func NewRedisCartStore(client *redis.Client, users UserRepository, prefix string) CartStore {
	if prefix == "" {
		prefix = "cart:"
	}
	return &redisCartStore{client: client, users: users, prefix: prefix, now: time.Now}
}

func (s *redisCartStore) owner(ctx context.Context, userID string) error {
	_, err := s.users.GetByID(ctx, userID)
	return err
}

func (s *redisCartStore) key(userID string) string {
	return s.prefix + userID
}

func (s *redisCartStore) AddItem(ctx context.Context, userID, productID string) (bool, error) {
	if err := s.owner(ctx, userID); err != nil {
		return false, err
	}
	added, err := s.client.ZAddNX(ctx, s.key(userID), redis.Z{
		Score:  float64(s.now().UnixMicro()),
		Member: productID,
	}).Result()
	if err != nil {
		return false, err
	}
	return added == 1, nil
}

func (s *redisCartStore) RemoveItem(ctx context.Context, userID, productID string) (bool, error) {
	if err := s.owner(ctx, userID); err != nil {
		return false, err
	}
	removed, err := s.client.ZRem(ctx, s.key(userID), productID).Result()
	if err != nil {
		return false, err
	}
	return removed == 1, nil
}

func (s *redisCartStore) Items(ctx context.Context, userID string) ([]string, error) {
	if err := s.owner(ctx, userID); err != nil {
		return nil, err
	}
	items, err := s.client.ZRange(ctx, s.key(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
