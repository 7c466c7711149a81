package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"tripbook/internal/domain"
)

// RecentSearchStore keeps the driver's most recent place searches,
// most-recent-first, deduplicated, capped.
type RecentSearchStore struct {
	client *redis.Client
}

// NewRecentSearchStore creates a new RecentSearchStore.
func NewRecentSearchStore(client *redis.Client) *RecentSearchStore {
	return &RecentSearchStore{client: client}
}

const (
	recentSearchesKey = "recent_searches"
	recentSearchesMax = 10
)

// Add records a searched place at the head of the list, removing any earlier
// occurrence and trimming to the cap.
func (s *RecentSearchStore) Add(ctx context.Context, place *domain.Place) error {
	data, err := json.Marshal(place)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.LRem(ctx, recentSearchesKey, 0, data)
	pipe.LPush(ctx, recentSearchesKey, data)
	pipe.LTrim(ctx, recentSearchesKey, 0, recentSearchesMax-1)
	_, err = pipe.Exec(ctx)
	return err
}

// GetAll returns the recent searches, most recent first.
func (s *RecentSearchStore) GetAll(ctx context.Context) ([]*domain.Place, error) {
	values, err := s.client.LRange(ctx, recentSearchesKey, 0, recentSearchesMax-1).Result()
	if err != nil {
		return nil, err
	}

	places := make([]*domain.Place, 0, len(values))
	for _, v := range values {
		var place domain.Place
		if err := json.Unmarshal([]byte(v), &place); err != nil {
			continue // Skip corrupt entries
		}
		places = append(places, &place)
	}
	return places, nil
}

// Clear drops the whole list.
func (s *RecentSearchStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, recentSearchesKey).Err()
}
