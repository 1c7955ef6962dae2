package publisher

import (
	"context"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

// UpdatePublisher places a vehicle update on the at-least-once delivery
// bus. Publishing is decoupled from live subscribers; it never blocks on
// their behavior.
type UpdatePublisher interface {
	PublishUpdate(ctx context.Context, update *domain.VehicleUpdate) error
}
