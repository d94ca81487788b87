package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// schema is the facade's entire storage model: resources are JSONB documents
// keyed by (resource, id). Derived views are computed in Go, never in SQL.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	resource   text        NOT NULL,
	id         text        NOT NULL,
	doc        jsonb       NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (resource, id)
);
`

// Migrate bootstraps the documents table.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// postgresStore is the Postgres Store implementation: one resource name,
// documents stored as JSONB.
type postgresStore[T any] struct {
	pool     *pgxpool.Pool
	resource string
	prefix   string
	id       func(*T) *string
}

func newPostgresStore[T any](pool *pgxpool.Pool, resource, prefix string, id func(*T) *string) *postgresStore[T] {
	return &postgresStore[T]{pool: pool, resource: resource, prefix: prefix, id: id}
}

func (s *postgresStore[T]) List(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM documents WHERE resource = $1 ORDER BY created_at ASC`,
		s.resource,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.resource, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.resource, err)
		}
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.resource, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.resource, err)
	}
	return out, nil
}

func (s *postgresStore[T]) Get(ctx context.Context, id string) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var zero T
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE resource = $1 AND id = $2`,
		s.resource, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, fmt.Errorf("%s %s: %w", s.resource, id, ErrNotFound)
		}
		return zero, fmt.Errorf("get %s: %w", s.resource, err)
	}

	var item T
	if err := json.Unmarshal(doc, &item); err != nil {
		return zero, fmt.Errorf("decode %s: %w", s.resource, err)
	}
	return item, nil
}

func (s *postgresStore[T]) Save(ctx context.Context, item T) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var zero T
	id := s.id(&item)
	if *id == "" {
		*id = fmt.Sprintf("%s-%d", s.prefix, time.Now().UnixMilli())
	}

	doc, err := json.Marshal(item)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", s.resource, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (resource, id, doc)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (resource, id)
		 DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		s.resource, *id, doc,
	)
	if err != nil {
		return zero, fmt.Errorf("save %s: %w", s.resource, err)
	}
	return item, nil
}

func (s *postgresStore[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	cmd, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE resource = $1 AND id = $2`,
		s.resource, id,
	)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.resource, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", s.resource, id, ErrNotFound)
	}
	return nil
}
