package module

import (
	"context"
	"time"

	"github.com/google/uuid"

	"headcount/internal/services/api/spaces/domain"
	spacessvc "headcount/internal/services/api/spaces/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptSpacesPort struct{ svc spacessvc.Service }

// List returns the space directory
func (a adaptSpacesPort) List(ctx context.Context, in domain.ListInput) ([]domain.Space, error) {
	return a.svc.List(ctx, in)
}

// Get returns a single space by id
func (a adaptSpacesPort) Get(ctx context.Context, in domain.GetInput) (domain.Space, error) {
	return a.svc.Get(ctx, in)
}

// Zones resolves each space's configured IANA zone
func (a adaptSpacesPort) Zones(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*time.Location, error) {
	return a.svc.Zones(ctx, ids)
}

// Capacities returns configured target capacities keyed by space id
func (a adaptSpacesPort) Capacities(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*int, error) {
	return a.svc.Capacities(ctx, ids)
}
