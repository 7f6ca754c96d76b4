// Package repo provides postgres access for history
package repo

import (
	"context"

	"lingo/internal/modkit/repokit"
	perr "lingo/internal/platform/errors"
	"lingo/internal/platform/store"
)

// Repo defines the repository contract for history
type Repo interface {
	// Get returns the stored history document and whether one exists
	Get(ctx context.Context, subject string) ([]byte, bool, error)
	// Put upserts the history document for a subject
	Put(ctx context.Context, subject string, doc []byte) error
	// Delete removes the history document, missing rows are not an error
	Delete(ctx context.Context, subject string) error
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Get(ctx context.Context, subject string) ([]byte, bool, error) {
	const sql = `select data from locale_history where subject = $1`
	doc, err := store.One(ctx, r.q, func(row store.Row) ([]byte, error) {
		var b []byte
		err := row.Scan(&b)
		return b, err
	}, sql, subject)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return nil, false, nil
		}
		return nil, false, perr.FromPostgres(err, "history get")
	}
	return doc, true, nil
}

func (r *queries) Put(ctx context.Context, subject string, doc []byte) error {
	const sql = `
insert into locale_history (subject, data, updated_at)
values ($1, $2, now())
on conflict (subject) do update set data = excluded.data, updated_at = now()
`
	if _, err := r.q.Exec(ctx, sql, subject, doc); err != nil {
		return perr.FromPostgres(err, "history put")
	}
	return nil
}

func (r *queries) Delete(ctx context.Context, subject string) error {
	const sql = `delete from locale_history where subject = $1`
	if _, err := r.q.Exec(ctx, sql, subject); err != nil {
		return perr.FromPostgres(err, "history delete")
	}
	return nil
}
