package seed

import (
	"context"
	"fmt"

	"bookhaven/internal/domain"
	bookrepo "bookhaven/internal/repository/book"
	genrerepo "bookhaven/internal/repository/genre"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts basic seed data for manual testing. It is idempotent via
// the repositories' upserts.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	genres := genrerepo.NewPostgres(pool)
	books := bookrepo.NewPostgres(pool, nil)

	for _, g := range []domain.Genre{
		{Key: "fiction", Name: "Fiction"},
		{Key: "sci-fi", Name: "Science Fiction"},
		{Key: "history", Name: "History"},
	} {
		if err := genres.Upsert(ctx, g); err != nil {
			return fmt.Errorf("upsert genre %s: %w", g.Key, err)
		}
	}

	for _, b := range []domain.Book{
		{
			Title:       "The Silent Harbor",
			Author:      "M. Calloway",
			GenreKey:    "fiction",
			Description: "A quiet port town and the stranger who unsettles it.",
			PriceCents:  15000,
			Currency:    "USD",
			Stock:       12,
		},
		{
			Title:       "Orbital Drift",
			Author:      "R. Ives",
			GenreKey:    "sci-fi",
			Description: "Salvage crews race for a derelict station.",
			PriceCents:  30000,
			Currency:    "USD",
			Stock:       7,
		},
		{
			Title:       "Maps of the Old Roads",
			Author:      "H. Okafor",
			GenreKey:    "history",
			Description: "Trade routes that shaped three continents.",
			PriceCents:  22500,
			Currency:    "USD",
			Stock:       4,
		},
	} {
		if _, err := books.Upsert(ctx, b); err != nil {
			return fmt.Errorf("upsert book %q: %w", b.Title, err)
		}
	}

	return nil
}
