// Package courierlocation keeps live courier positions in a Redis GEO set.
package courierlocation

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the GEO set holding one member per courier id.
const DefaultKey = "fulfillment:couriers:positions"

var _ ports.CourierLocator = (*RedisCourierLocator)(nil)

type RedisCourierLocator struct {
	client redis.Cmdable
	key    string
}

func NewRedisCourierLocator(client redis.Cmdable, key string) *RedisCourierLocator {
	if key == "" {
		key = DefaultKey
	}
	return &RedisCourierLocator{client: client, key: key}
}

func (l *RedisCourierLocator) UpdatePosition(ctx context.Context, courierID kernel.UUID, position kernel.GeoPoint) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := position.Validate(); err != nil {
		return err
	}

	return l.client.GeoAdd(ctx, l.key, &redis.GeoLocation{
		Name:      courierID.String(),
		Longitude: position.Lng(),
		Latitude:  position.Lat(),
	}).Err()
}

func (l *RedisCourierLocator) Positions(
	ctx context.Context,
	courierIDs []kernel.UUID,
) (map[kernel.UUID]kernel.GeoPoint, error) {
	positions := make(map[kernel.UUID]kernel.GeoPoint, len(courierIDs))
	if len(courierIDs) == 0 {
		return positions, nil
	}

	members := make([]string, len(courierIDs))
	for i, id := range courierIDs {
		members[i] = id.String()
	}

	results, err := l.client.GeoPos(ctx, l.key, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("read courier positions: %w", err)
	}

	for i, pos := range results {
		if pos == nil || i >= len(courierIDs) {
			continue
		}
		point, pointErr := kernel.NewGeoPoint(pos.Latitude, pos.Longitude)
		if pointErr != nil {
			continue
		}
		positions[courierIDs[i]] = point
	}

	return positions, nil
}

// Forget drops the live position of a courier going off duty.
func (l *RedisCourierLocator) Forget(ctx context.Context, courierID kernel.UUID) error {
	return l.client.ZRem(ctx, l.key, courierID.String()).Err()
}
