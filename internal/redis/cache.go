package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tripbook/internal/domain"
)

// TripCacheStore is a read-through cache for trip documents. The database
// remains the source of truth; every lifecycle write refreshes or invalidates
// the cached copy.
type TripCacheStore struct {
	client *redis.Client
}

// NewTripCacheStore creates a new TripCacheStore.
func NewTripCacheStore(client *redis.Client) *TripCacheStore {
	return &TripCacheStore{client: client}
}

// TripCacheTTL bounds staleness if an invalidation is ever lost.
const TripCacheTTL = 60 * time.Second

const tripCachePrefix = "cache:trip:"

// Get retrieves a trip from cache. A miss returns (nil, nil).
func (s *TripCacheStore) Get(ctx context.Context, tripID string) (*domain.Trip, error) {
	data, err := s.client.Get(ctx, tripCachePrefix+tripID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var trip domain.Trip
	if err := json.Unmarshal(data, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// Set stores a trip in cache.
func (s *TripCacheStore) Set(ctx context.Context, trip *domain.Trip) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tripCachePrefix+trip.ID, data, TripCacheTTL).Err()
}

// Invalidate removes a trip from cache.
func (s *TripCacheStore) Invalidate(ctx context.Context, tripID string) error {
	return s.client.Del(ctx, tripCachePrefix+tripID).Err()
}
