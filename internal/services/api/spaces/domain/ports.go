package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	List(ctx context.Context, in ListInput) ([]Space, error)
	Get(ctx context.Context, in GetInput) (Space, error)

	// Zones resolves each space's IANA zone to a loaded Location
	Zones(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*time.Location, error)

	// Capacities returns each space's configured target capacity; the value
	// is nil for spaces with no capacity set
	Capacities(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*int, error)
}
