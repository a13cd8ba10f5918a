package cart

import (
	"context"
	"errors"
	"os"
	"testing"

	"bookhaven/internal/domain"
	"bookhaven/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_SetAndListItems(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	customerID := insertCustomer(ctx, t, pool, "cart@example.com")
	bookID := insertBook(ctx, t, pool, "Orbital Drift", "K. Ashe", 30000, 7)

	repo := NewPostgres(pool)

	if err := repo.SetItem(ctx, customerID, bookID, 2); err != nil {
		t.Fatalf("SetItem insert: %v", err)
	}
	// Setting again replaces the quantity rather than adding a row.
	if err := repo.SetItem(ctx, customerID, bookID, 5); err != nil {
		t.Fatalf("SetItem update: %v", err)
	}

	items, err := repo.Items(ctx, customerID)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 cart row, got %d", len(items))
	}
	it := items[0]
	if it.BookID != bookID || it.Quantity != 5 || it.Title != "Orbital Drift" || it.PriceCents != 30000 || it.Stock != 7 {
		t.Fatalf("unexpected cart item %+v", it)
	}
}

func TestPostgres_RemoveItem(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	customerID := insertCustomer(ctx, t, pool, "remove@example.com")
	bookID := insertBook(ctx, t, pool, "Maps of the Old Roads", "T. Venn", 22500, 4)

	repo := NewPostgres(pool)
	if err := repo.SetItem(ctx, customerID, bookID, 1); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := repo.RemoveItem(ctx, customerID, bookID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := repo.RemoveItem(ctx, customerID, bookID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second removal, got %v", err)
	}
}

func TestPostgres_Clear(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	customerID := insertCustomer(ctx, t, pool, "clear@example.com")
	otherID := insertCustomer(ctx, t, pool, "other@example.com")
	bookID := insertBook(ctx, t, pool, "Orchard Songs", "L. Pim", 12000, 9)

	repo := NewPostgres(pool)
	if err := repo.SetItem(ctx, customerID, bookID, 3); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := repo.SetItem(ctx, otherID, bookID, 1); err != nil {
		t.Fatalf("SetItem other: %v", err)
	}

	if err := repo.Clear(ctx, customerID); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	items, err := repo.Items(ctx, customerID)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}

	// Other customers' carts are untouched.
	otherItems, err := repo.Items(ctx, otherID)
	if err != nil {
		t.Fatalf("Items other: %v", err)
	}
	if len(otherItems) != 1 {
		t.Fatalf("expected 1 item in other cart, got %d", len(otherItems))
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

func insertCustomer(ctx context.Context, t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `INSERT INTO customers (email, password_hash) VALUES ($1, 'x') RETURNING id::text`, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return id
}

func insertBook(ctx context.Context, t *testing.T, pool *pgxpool.Pool, title, author string, priceCents int64, stock int) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO books (title, author, price_cents, currency, stock)
		VALUES ($1, $2, $3, 'USD', $4)
		RETURNING id::text
	`, title, author, priceCents, stock).Scan(&id)
	if err != nil {
		t.Fatalf("insert book: %v", err)
	}
	return id
}
