//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"headcount/internal/platform/store"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestRepo_ListAndByIDs_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn}})
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	const ddl = `
create table spaces (
	id uuid primary key,
	name text not null,
	timezone text not null,
	target_capacity int
)`
	if _, err := st.PG.Exec(ctx, ddl); err != nil {
		t.Fatalf("create table: %v", err)
	}

	cafeteria := uuid.New()
	lounge := uuid.New()
	if _, err := st.PG.Exec(ctx,
		`insert into spaces (id, name, timezone, target_capacity) values
		 ($1, 'Cafeteria', 'America/New_York', 40),
		 ($2, 'Lounge', 'America/Los_Angeles', null)`,
		cafeteria, lounge,
	); err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := NewPG().Bind(st.PG)

	all, err := r.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Cafeteria" || all[1].Name != "Lounge" {
		t.Fatalf("List order or content wrong: %#v", all)
	}
	if all[0].TargetCapacity == nil || *all[0].TargetCapacity != 40 {
		t.Fatalf("cafeteria capacity = %v", all[0].TargetCapacity)
	}
	if all[1].TargetCapacity != nil {
		t.Fatalf("lounge capacity should be nil, got %v", *all[1].TargetCapacity)
	}

	subset, err := r.ByIDs(ctx, []uuid.UUID{lounge})
	if err != nil {
		t.Fatalf("ByIDs: %v", err)
	}
	if len(subset) != 1 || subset[0].ID != lounge || subset[0].Timezone != "America/Los_Angeles" {
		t.Fatalf("ByIDs subset wrong: %#v", subset)
	}

	none, err := r.ByIDs(ctx, []uuid.UUID{uuid.New()})
	if err != nil {
		t.Fatalf("ByIDs miss: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no rows, got %#v", none)
	}
}
