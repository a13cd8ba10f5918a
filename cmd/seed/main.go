package main

import (
	"context"
	"log"
	"os"

	"bookhaven/internal/config"
	"bookhaven/internal/db"
	"bookhaven/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	if err := seed.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("apply seed: %v", err)
	}
	logger.Printf("seed data applied")
}
