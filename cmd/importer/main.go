package main

import (
	"context"
	"flag"
	"log"
	"os"

	"bookhaven/internal/config"
	"bookhaven/internal/db"
	"bookhaven/internal/importer"
	bookrepo "bookhaven/internal/repository/book"
	genrerepo "bookhaven/internal/repository/genre"
)

func main() {
	path := flag.String("file", "", "path to a JSON catalog export")
	flag.Parse()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)
	if *path == "" {
		logger.Fatal("missing -file argument")
	}

	cfg := config.FromEnv()
	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	imp := importer.New(bookrepo.NewPostgres(dbpool, logger), genrerepo.NewPostgres(dbpool), logger)
	count, err := imp.ImportFile(ctx, *path)
	if err != nil {
		logger.Fatalf("import: %v", err)
	}
	logger.Printf("imported %d books from %s", count, *path)
}
