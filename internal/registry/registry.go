// Package registry is the persistence facade: one list/save/delete store per
// resource, Postgres-backed when the database is reachable and falling back
// to a seeded in-memory store otherwise. Both implementations share the same
// id-assignment and upsert semantics, so callers never see which one they
// got.
package registry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poliexam/paperforge/internal/bank"
	"github.com/poliexam/paperforge/internal/course"
	"github.com/poliexam/paperforge/internal/paper"
)

// ErrNotFound is returned by Get and Delete for unknown ids.
var ErrNotFound = errors.New("not found")

// Store is the facade contract every resource implements.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Save(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Department is an institutional department record.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is an academic session, e.g. "Sesi II 2025/2026".
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Branding carries the institution identity printed on paper headers.
type Branding struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

// Registry bundles the per-resource stores.
type Registry struct {
	Departments Store[Department]
	Sessions    Store[Session]
	Courses     Store[course.Course]
	Questions   Store[bank.Question]
	Papers      Store[paper.Paper]
	Branding    Store[Branding]

	// Fallback is true when the registry runs on the in-memory store.
	Fallback bool
}

// New builds a Postgres-backed registry, or the seeded in-memory fallback
// when pool is nil. The fallback choice is logged once here, never per call.
func New(ctx context.Context, pool *pgxpool.Pool) (*Registry, error) {
	if pool == nil {
		slog.Warn("database unavailable, registry using in-memory fallback store")
		return NewMemory(), nil
	}

	if err := Migrate(ctx, pool); err != nil {
		return nil, err
	}

	return &Registry{
		Departments: newPostgresStore(pool, "departments", "dept", departmentID),
		Sessions:    newPostgresStore(pool, "sessions", "s", sessionID),
		Courses:     newPostgresStore(pool, "courses", "local", courseID),
		Questions:   newPostgresStore(pool, "questions", "custom", questionID),
		Papers:      newPostgresStore(pool, "papers", "paper", paperID),
		Branding:    newPostgresStore(pool, "branding", "local", brandingID),
	}, nil
}

// id accessors let the generic stores read and assign resource ids.
func departmentID(d *Department) *string  { return &d.ID }
func sessionID(s *Session) *string        { return &s.ID }
func courseID(c *course.Course) *string   { return &c.ID }
func questionID(q *bank.Question) *string { return &q.ID }
func paperID(p *paper.Paper) *string      { return &p.ID }
func brandingID(b *Branding) *string      { return &b.ID }

// NewMemory builds the in-memory registry seeded with the fixed initial
// data every fresh installation starts from.
func NewMemory() *Registry {
	r := &Registry{
		Departments: newMemoryStore(newSeq(), "dept", departmentID),
		Sessions:    newMemoryStore(newSeq(), "s", sessionID),
		Courses:     newMemoryStore(newSeq(), "local", courseID),
		Questions:   newMemoryStore(newSeq(), "custom", questionID),
		Papers:      newMemoryStore(newSeq(), "paper", paperID),
		Branding:    newMemoryStore(newSeq(), "local", brandingID),
		Fallback:    true,
	}
	seed(r)
	return r
}
