package importer

import (
	"context"
	"strings"
	"testing"

	"bookhaven/internal/domain"
)

type memBookRepo struct {
	upserted []domain.Book
}

func (r *memBookRepo) Upsert(_ context.Context, b domain.Book) (*domain.Book, error) {
	r.upserted = append(r.upserted, b)
	out := b
	out.ID = "book-1"
	return &out, nil
}

type memGenreRepo struct {
	upserted []domain.Genre
}

func (r *memGenreRepo) Upsert(_ context.Context, g domain.Genre) error {
	r.upserted = append(r.upserted, g)
	return nil
}

func TestImport(t *testing.T) {
	books := &memBookRepo{}
	genres := &memGenreRepo{}
	imp := New(books, genres, nil)

	payload := `{
		"genres": [
			{"key": "sci-fi", "name": "Science Fiction"},
			{"key": "", "name": "skipped"}
		],
		"books": [
			{"title": "Orbital Drift", "author": "K. Ashe", "genre": "sci-fi", "priceCents": 30000, "stock": 7},
			{"title": "", "author": "Nobody", "priceCents": 100},
			{"title": "Bad Price", "author": "X", "priceCents": -5},
			{"title": "Maps of the Old Roads", "author": "T. Venn", "priceCents": 22500, "currency": "EUR", "stock": 4}
		]
	}`

	n, err := imp.Import(context.Background(), strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported books, got %d", n)
	}

	if len(genres.upserted) != 1 || genres.upserted[0].Key != "sci-fi" {
		t.Fatalf("unexpected genres %+v", genres.upserted)
	}
	if len(books.upserted) != 2 {
		t.Fatalf("unexpected books %+v", books.upserted)
	}
	if books.upserted[0].Currency != "USD" {
		t.Fatalf("expected USD default currency, got %q", books.upserted[0].Currency)
	}
	if books.upserted[1].Currency != "EUR" {
		t.Fatalf("expected explicit currency kept, got %q", books.upserted[1].Currency)
	}
}

func TestImportRejectsBadJSON(t *testing.T) {
	imp := New(&memBookRepo{}, &memGenreRepo{}, nil)
	if _, err := imp.Import(context.Background(), strings.NewReader(`{"books": [`)); err == nil {
		t.Fatalf("expected decode error")
	}
}
