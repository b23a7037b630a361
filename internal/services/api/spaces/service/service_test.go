package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"headcount/internal/modkit/repokit"
	perr "headcount/internal/platform/errors"
	"headcount/internal/services/api/spaces/repo"
)

// fakeTx satisfies repokit.TxRunner; the fake repo never touches SQL
type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error)     { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row            { return nil }
func (fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error  { return fn(fakeTx{}) }

type fakeRepo struct {
	rows   []repo.Row
	lastBy []uuid.UUID
}

func (f *fakeRepo) List(context.Context) ([]repo.Row, error) { return f.rows, nil }

func (f *fakeRepo) ByIDs(_ context.Context, ids []uuid.UUID) ([]repo.Row, error) {
	f.lastBy = ids
	var out []repo.Row
	for _, id := range ids {
		for _, r := range f.rows {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

type fakeBinder struct{ r *fakeRepo }

func (b fakeBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

func TestZonesDedupesRepeatedIDs(t *testing.T) {
	spaceA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fr := &fakeRepo{rows: []repo.Row{{ID: spaceA, Name: "Cafeteria", Timezone: "America/New_York"}}}
	svc := New(fakeTx{}, fakeBinder{r: fr})

	zones, err := svc.Zones(context.Background(), []uuid.UUID{spaceA, spaceA, spaceA})
	if err != nil {
		t.Fatalf("Zones with repeated id: unexpected error %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("Zones returned %d entries, want 1", len(zones))
	}
	ny, _ := time.LoadLocation("America/New_York")
	if zones[spaceA].String() != ny.String() {
		t.Fatalf("Zones[%s] = %v, want %v", spaceA, zones[spaceA], ny)
	}
	if len(fr.lastBy) != 1 {
		t.Fatalf("repo queried with %d ids, want deduped 1", len(fr.lastBy))
	}
}

func TestZonesUnknownSpaceIsNotFound(t *testing.T) {
	spaceA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	spaceB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	fr := &fakeRepo{rows: []repo.Row{{ID: spaceA, Name: "Cafeteria", Timezone: "America/New_York"}}}
	svc := New(fakeTx{}, fakeBinder{r: fr})

	_, err := svc.Zones(context.Background(), []uuid.UUID{spaceA, spaceB})
	if err == nil {
		t.Fatal("Zones with unknown id: want error")
	}
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Zones error code = %v, want not found", perr.CodeOf(err))
	}
}

func TestZonesBadTimezoneIsServerError(t *testing.T) {
	spaceA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fr := &fakeRepo{rows: []repo.Row{{ID: spaceA, Name: "Cafeteria", Timezone: "Not/AZone"}}}
	svc := New(fakeTx{}, fakeBinder{r: fr})

	_, err := svc.Zones(context.Background(), []uuid.UUID{spaceA})
	if err == nil {
		t.Fatal("Zones with bad stored zone: want error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnknown) {
		t.Fatalf("Zones error code = %v, want unknown (server fault)", perr.CodeOf(err))
	}
}
