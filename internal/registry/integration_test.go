package registry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/poliexam/paperforge/internal/bank"
	"github.com/poliexam/paperforge/internal/registry"
)

// TestPostgresRegistry exercises the Postgres store end to end against a
// throwaway container. Skipped in short mode and wherever Docker is absent.
func TestPostgresRegistry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("paperforge"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		termCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = ctr.Terminate(termCtx)
	})

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("ConnectionString() error = %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("pgxpool.New() error = %v", err)
	}
	t.Cleanup(pool.Close)

	r, err := registry.New(ctx, pool)
	if err != nil {
		t.Fatalf("registry.New() error = %v", err)
	}
	if r.Fallback {
		t.Fatal("Fallback should be false with a live pool")
	}

	// Create: id is assigned with the resource prefix.
	saved, err := r.Questions.Save(ctx, bank.Question{
		Text:     "Explain packet switching.",
		Marks:    4,
		Taxonomy: "C2",
		Type:     bank.TypeEssay,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Save() should assign an ID")
	}

	// Round-trip preserves the document.
	got, err := r.Questions.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Text != saved.Text || got.Marks != 4 {
		t.Errorf("Get() = %+v, want saved question", got)
	}

	// Upsert updates in place.
	got.Marks = 6
	if _, err := r.Questions.Save(ctx, got); err != nil {
		t.Fatalf("Save() upsert error = %v", err)
	}
	list, err := r.Questions.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Marks != 6 {
		t.Errorf("List() = %+v, want one question with marks 6", list)
	}

	// Delete removes; a second delete reports not found.
	if err := r.Questions.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := r.Questions.Delete(ctx, saved.ID); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
