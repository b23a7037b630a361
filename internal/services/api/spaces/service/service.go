// Package service contains spaces directory workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"headcount/internal/modkit/repokit"
	perr "headcount/internal/platform/errors"
	"headcount/internal/services/api/spaces/domain"
	"headcount/internal/services/api/spaces/repo"
)

// Service defines the spaces service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the spaces service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a spaces service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("spaces.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("spaces.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List returns the space directory, optionally filtered to a subset of ids
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Space, error) {
	var (
		rows []repo.Row
		err  error
	)
	if len(in.SpaceIDs) > 0 {
		rows, err = s.Repo.ByIDs(ctx, in.SpaceIDs)
	} else {
		rows, err = s.Repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.Space, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSpace(r))
	}
	return out, nil
}

// Get returns a single space by id
func (s *Svc) Get(ctx context.Context, in domain.GetInput) (domain.Space, error) {
	rows, err := s.Repo.ByIDs(ctx, []uuid.UUID{in.SpaceID})
	if err != nil {
		return domain.Space{}, err
	}
	if len(rows) == 0 {
		return domain.Space{}, perr.Newf(perr.ErrorCodeNotFound, "spaces unknown space %s", in.SpaceID)
	}
	return toSpace(rows[0]), nil
}

// Zones resolves each space's configured IANA zone
// A zone that fails to load is a misconfigured record, not a caller error
func (s *Svc) Zones(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*time.Location, error) {
	// dedupe so a repeated id cannot skew the resolution count below
	uniq := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	rows, err := s.Repo.ByIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	if len(rows) != len(uniq) {
		return nil, perr.Newf(perr.ErrorCodeNotFound, "spaces resolved %d of %d requested spaces", len(rows), len(uniq))
	}
	out := make(map[uuid.UUID]*time.Location, len(rows))
	for _, r := range rows {
		loc, err := time.LoadLocation(r.Timezone)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "spaces bad timezone %q on space %s", r.Timezone, r.ID)
		}
		out[r.ID] = loc
	}
	return out, nil
}

// Capacities returns configured target capacities keyed by space id
func (s *Svc) Capacities(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*int, error) {
	rows, err := s.Repo.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*int, len(rows))
	for _, r := range rows {
		out[r.ID] = r.TargetCapacity
	}
	return out, nil
}

func toSpace(r repo.Row) domain.Space {
	return domain.Space{
		ID:             r.ID,
		Name:           r.Name,
		TimezoneID:     r.Timezone,
		TargetCapacity: r.TargetCapacity,
	}
}
