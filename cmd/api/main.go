package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookhaven/internal/config"
	"bookhaven/internal/db"
	"bookhaven/internal/httpserver"
	bookrepo "bookhaven/internal/repository/book"
	cartrepo "bookhaven/internal/repository/cart"
	customerrepo "bookhaven/internal/repository/customer"
	genrerepo "bookhaven/internal/repository/genre"
	orderrepo "bookhaven/internal/repository/order"
	reviewrepo "bookhaven/internal/repository/review"
	tokenrepo "bookhaven/internal/repository/token"
	booksvc "bookhaven/internal/service/book"
	cartsvc "bookhaven/internal/service/cart"
	customersvc "bookhaven/internal/service/customer"
	genresvc "bookhaven/internal/service/genre"
	ordersvc "bookhaven/internal/service/order"
	reviewsvc "bookhaven/internal/service/review"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	bookService := booksvc.New(bookRepo)
	genreRepo := genrerepo.NewPostgres(dbpool)
	genreService := genresvc.New(genreRepo)
	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo, bookRepo)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	customerService := customersvc.New(customerRepo, tokenRepo)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	orderService := ordersvc.New(orderRepo, customerService, cartService, logger)
	reviewRepo := reviewrepo.NewPostgres(dbpool)
	reviewService := reviewsvc.New(reviewRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		BookSvc:     bookService,
		GenreSvc:    genreService,
		CartSvc:     cartService,
		CustomerSvc: customerService,
		OrderSvc:    orderService,
		ReviewSvc:   reviewService,
	}, httpserver.Options{
		CORSOrigins:     cfg.CORSOrigins,
		LoginRatePerMin: cfg.LoginRatePerMin,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
