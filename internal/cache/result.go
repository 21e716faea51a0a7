package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/piwi3910/FilmCut/internal/model"
)

// GetResult loads a cached packing result. An undecodable entry counts as a miss.
func GetResult(ctx context.Context, c Cache, key string) (model.PackingResult, bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return model.PackingResult{}, false, err
	}
	var result model.PackingResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.PackingResult{}, false, nil
	}
	return result, true, nil
}

// SetResult stores a packing result under key.
func SetResult(ctx context.Context, c Cache, key string, result model.PackingResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
