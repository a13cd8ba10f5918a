package book

import (
	"context"
	"errors"
	"os"
	"testing"

	"bookhaven/internal/domain"
	"bookhaven/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	b, err := repo.Upsert(ctx, domain.Book{
		Title:      "The Silent Harbor",
		Author:     "M. Reyes",
		PriceCents: 15000,
		Currency:   "USD",
		Stock:      12,
	})
	if err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	if b.ID == "" {
		t.Fatalf("expected ID set")
	}

	updated, err := repo.Upsert(ctx, domain.Book{
		Title:       "The Silent Harbor",
		Author:      "M. Reyes",
		Description: "second edition",
		PriceCents:  16000,
		Currency:    "USD",
		Stock:       8,
	})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if updated.ID != b.ID {
		t.Fatalf("expected same ID after update, got %s and %s", b.ID, updated.ID)
	}

	got, err := repo.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PriceCents != 16000 || got.Stock != 8 || got.Description != "second edition" {
		t.Fatalf("unexpected book %+v", got)
	}
}

func TestPostgres_GetMissing(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_ListFilters(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	if _, err := pool.Exec(ctx, `INSERT INTO genres (key, name) VALUES ('sci-fi', 'Science Fiction'), ('travel', 'Travel')`); err != nil {
		t.Fatalf("insert genres: %v", err)
	}

	repo := NewPostgres(pool, nil)
	seedBooks := []domain.Book{
		{Title: "Orbital Drift", Author: "K. Ashe", GenreKey: "sci-fi", PriceCents: 30000, Currency: "USD", Stock: 7},
		{Title: "Maps of the Old Roads", Author: "T. Venn", GenreKey: "travel", PriceCents: 22500, Currency: "USD", Stock: 4},
	}
	for _, b := range seedBooks {
		if _, err := repo.Upsert(ctx, b); err != nil {
			t.Fatalf("seed %q: %v", b.Title, err)
		}
	}

	byGenre, err := repo.List(ctx, domain.BookFilter{GenreKey: "sci-fi"})
	if err != nil {
		t.Fatalf("List by genre: %v", err)
	}
	if len(byGenre) != 1 || byGenre[0].Title != "Orbital Drift" {
		t.Fatalf("unexpected genre filter result %+v", byGenre)
	}

	byPrice, err := repo.List(ctx, domain.BookFilter{MaxPriceCents: 25000})
	if err != nil {
		t.Fatalf("List by price: %v", err)
	}
	if len(byPrice) != 1 || byPrice[0].Title != "Maps of the Old Roads" {
		t.Fatalf("unexpected price filter result %+v", byPrice)
	}

	byQuery, err := repo.List(ctx, domain.BookFilter{Query: "ashe"})
	if err != nil {
		t.Fatalf("List by query: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].Author != "K. Ashe" {
		t.Fatalf("unexpected query filter result %+v", byQuery)
	}
}

func TestPostgres_SuggestTitles(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	for _, b := range []domain.Book{
		{Title: "Orbital Drift", Author: "K. Ashe", PriceCents: 30000, Currency: "USD"},
		{Title: "Orchard Songs", Author: "L. Pim", PriceCents: 12000, Currency: "USD"},
		{Title: "Maps of the Old Roads", Author: "T. Venn", PriceCents: 22500, Currency: "USD"},
	} {
		if _, err := repo.Upsert(ctx, b); err != nil {
			t.Fatalf("seed %q: %v", b.Title, err)
		}
	}

	titles, err := repo.SuggestTitles(ctx, "or", 10)
	if err != nil {
		t.Fatalf("SuggestTitles: %v", err)
	}
	if len(titles) != 2 || titles[0] != "Orbital Drift" || titles[1] != "Orchard Songs" {
		t.Fatalf("unexpected suggestions %v", titles)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE reviews, order_statuses, order_items, orders, cart_items, tokens, customers, books, genres RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
