package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	appinventory "github.com/retailpos/backend/internal/application/inventory"
)

// RedisBreachStore keeps the active low stock breach set in a Redis hash
// so dashboards can read alerts across instances without scanning levels
type RedisBreachStore struct {
	client *redis.Client
	key    string
}

// NewRedisBreachStore creates a breach store backed by an existing Redis client
func NewRedisBreachStore(client *redis.Client, key string) *RedisBreachStore {
	if key == "" {
		key = "stock:breaches"
	}
	return &RedisBreachStore{
		client: client,
		key:    key,
	}
}

// RecordBreach marks the store-item pair as breached
func (s *RedisBreachStore) RecordBreach(ctx context.Context, alert appinventory.LowStockAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode breach alert: %w", err)
	}

	if err := s.client.HSet(ctx, s.key, breachField(alert.StoreID, alert.ItemID), payload).Err(); err != nil {
		return fmt.Errorf("failed to record breach: %w", err)
	}
	return nil
}

// ClearBreach removes the pair from the active set
func (s *RedisBreachStore) ClearBreach(ctx context.Context, storeID, itemID string) error {
	if err := s.client.HDel(ctx, s.key, breachField(storeID, itemID)).Err(); err != nil {
		return fmt.Errorf("failed to clear breach: %w", err)
	}
	return nil
}

// ActiveBreaches returns all currently breached pairs
func (s *RedisBreachStore) ActiveBreaches(ctx context.Context) ([]appinventory.LowStockAlert, error) {
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read breaches: %w", err)
	}

	alerts := make([]appinventory.LowStockAlert, 0, len(values))
	for _, raw := range values {
		var alert appinventory.LowStockAlert
		if err := json.Unmarshal([]byte(raw), &alert); err != nil {
			return nil, fmt.Errorf("failed to decode breach alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// Ensure RedisBreachStore implements BreachStore
var _ appinventory.BreachStore = (*RedisBreachStore)(nil)
