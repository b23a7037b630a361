// Package repo provides postgres access for the spaces directory
package repo

import (
	"context"

	"github.com/google/uuid"

	"headcount/internal/modkit/repokit"
)

// Repo is the minimal persistence surface for spaces
type Repo interface {
	List(ctx context.Context) ([]Row, error)
	ByIDs(ctx context.Context, ids []uuid.UUID) ([]Row, error)
}

// Row represents one space record
type Row struct {
	ID             uuid.UUID
	Name           string
	Timezone       string
	TargetCapacity *int
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) List(ctx context.Context) ([]Row, error) {
	const sql = `
select id, name, timezone, target_capacity
from spaces
order by name asc, id asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (r *queries) ByIDs(ctx context.Context, ids []uuid.UUID) ([]Row, error) {
	const sql = `
select id, name, timezone, target_capacity
from spaces
where id = any($1)
order by name asc, id asc
`
	rows, err := r.q.Query(ctx, sql, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows repokit.Rows) ([]Row, error) {
	var out []Row
	for rows.Next() {
		var rr Row
		if err := rows.Scan(&rr.ID, &rr.Name, &rr.Timezone, &rr.TargetCapacity); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
