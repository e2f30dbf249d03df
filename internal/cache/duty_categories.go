package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
)

const (
	dutyCategoriesKey = "landedcost:duty_categories:v1"
	dutyCategoriesTTL = 10 * time.Minute
)

type dutyCategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDutyCategoryCache stores the ordered category list under a single key.
// Without a client every lookup misses.
func NewDutyCategoryCache(client *redis.Client) dutydomain.Cache {
	if client == nil {
		return noopDutyCategoryCache{}
	}
	return &dutyCategoryCache{client: client, ttl: dutyCategoriesTTL}
}

func (c *dutyCategoryCache) GetAll(ctx context.Context) ([]dutydomain.DutyCategory, bool, error) {
	raw, err := c.client.Get(ctx, dutyCategoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	items, err := decodeDutyCategories(raw)
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *dutyCategoryCache) SetAll(ctx context.Context, categories []dutydomain.DutyCategory) error {
	raw, err := encodeDutyCategories(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dutyCategoriesKey, raw, c.ttl).Err()
}

func (c *dutyCategoryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, dutyCategoriesKey).Err()
}

type noopDutyCategoryCache struct{}

func (noopDutyCategoryCache) GetAll(context.Context) ([]dutydomain.DutyCategory, bool, error) {
	return nil, false, nil
}

func (noopDutyCategoryCache) SetAll(context.Context, []dutydomain.DutyCategory) error { return nil }

func (noopDutyCategoryCache) Invalidate(context.Context) error { return nil }

func encodeDutyCategories(categories []dutydomain.DutyCategory) ([]byte, error) {
	if categories == nil {
		categories = []dutydomain.DutyCategory{}
	}
	return json.Marshal(categories)
}

func decodeDutyCategories(raw []byte) ([]dutydomain.DutyCategory, error) {
	var items []dutydomain.DutyCategory
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
