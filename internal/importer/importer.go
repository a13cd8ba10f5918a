package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"bookhaven/internal/domain"
)

// bookRepo is the subset of the book repository the importer needs.
type bookRepo interface {
	Upsert(ctx context.Context, b domain.Book) (*domain.Book, error)
}

type genreRepo interface {
	Upsert(ctx context.Context, g domain.Genre) error
}

// Importer loads a catalog export into the database.
type Importer struct {
	books  bookRepo
	genres genreRepo
	logger *log.Logger
}

func New(books bookRepo, genres genreRepo, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Importer{books: books, genres: genres, logger: logger}
}

type catalogFile struct {
	Genres []genreEntry `json:"genres"`
	Books  []bookEntry  `json:"books"`
}

type genreEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type bookEntry struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Currency    string `json:"currency"`
	Stock       int    `json:"stock"`
	CoverURL    string `json:"coverUrl"`
}

// ImportFile reads a JSON catalog export and upserts its genres and books.
// Rows with missing required fields are skipped with a warning so one bad
// entry does not sink the whole import.
func (i *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	return i.Import(ctx, f)
}

func (i *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	var file catalogFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	for _, g := range file.Genres {
		if strings.TrimSpace(g.Key) == "" {
			i.logger.Printf("importer: skipping genre with empty key")
			continue
		}
		if err := i.genres.Upsert(ctx, domain.Genre{Key: g.Key, Name: g.Name}); err != nil {
			return 0, fmt.Errorf("upsert genre %s: %w", g.Key, err)
		}
	}

	imported := 0
	for _, b := range file.Books {
		if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" {
			i.logger.Printf("importer: skipping book with missing title/author")
			continue
		}
		if b.PriceCents < 0 || b.Stock < 0 {
			i.logger.Printf("importer: skipping book %q with negative price or stock", b.Title)
			continue
		}
		currency := b.Currency
		if currency == "" {
			currency = "USD"
		}
		if _, err := i.books.Upsert(ctx, domain.Book{
			Title:       b.Title,
			Author:      b.Author,
			GenreKey:    b.Genre,
			Description: b.Description,
			PriceCents:  b.PriceCents,
			Currency:    currency,
			Stock:       b.Stock,
			CoverURL:    b.CoverURL,
		}); err != nil {
			return imported, fmt.Errorf("upsert book %q: %w", b.Title, err)
		}
		imported++
	}

	i.logger.Printf("importer: imported %d books", imported)
	return imported, nil
}
