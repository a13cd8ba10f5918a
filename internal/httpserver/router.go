package httpserver

import (
	"context"
	"errors"
	"log"
	"strings"

	"bookhaven/internal/domain"
	customersvc "bookhaven/internal/service/customer"
	ordersvc "bookhaven/internal/service/order"
	reviewsvc "bookhaven/internal/service/review"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookService is the catalog surface the router needs.
type BookService interface {
	List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

type GenreService interface {
	List(ctx context.Context) ([]domain.Genre, error)
}

type CartService interface {
	Items(ctx context.Context, customerID string) ([]domain.CartItem, error)
	SetItem(ctx context.Context, customerID, bookID string, quantity int) error
	RemoveItem(ctx context.Context, customerID, bookID string) error
	Clear(ctx context.Context, customerID string) error
}

type CustomerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, id string, in customersvc.ProfileInput) (*domain.Customer, error)
	ChangePassword(ctx context.Context, id, current, next string) error
	AccessTTLSeconds() int
}

type OrderService interface {
	Place(ctx context.Context, customerID string, items map[string]int, shippingAddress, paymentMethod string) (*ordersvc.Placed, error)
	List(ctx context.Context, customerID string) ([]domain.Order, error)
	Get(ctx context.Context, customerID, orderID string) (*domain.Order, error)
	AppendStatus(ctx context.Context, customerID, orderID, label, trackingNumber string) error
}

type ReviewService interface {
	ListByBook(ctx context.Context, bookID string) ([]domain.Review, error)
	Upsert(ctx context.Context, customerID, bookID string, in reviewsvc.Input) (*domain.Review, error)
	Summary(ctx context.Context, bookID string) (*domain.RatingSummary, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	BookSvc     BookService
	GenreSvc    GenreService
	CartSvc     CartService
	CustomerSvc CustomerService
	OrderSvc    OrderService
	ReviewSvc   ReviewService
}

// buildRouter wires all storefront routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.BookSvc == nil || deps.CustomerSvc == nil || deps.CartSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("missing router dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(opts.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/books", listBooksHandler(deps.BookSvc))
	router.GET("/books/suggest", suggestBooksHandler(deps.BookSvc))
	router.GET("/books/:bookId", getBookHandler(deps.BookSvc))
	if deps.ReviewSvc != nil {
		router.GET("/books/:bookId/reviews", listReviewsHandler(deps.ReviewSvc))
		router.GET("/books/:bookId/rating", ratingSummaryHandler(deps.ReviewSvc))
	}
	if deps.GenreSvc != nil {
		router.GET("/genres", listGenresHandler(deps.GenreSvc))
	}

	router.POST("/signup", signupHandler(deps.CustomerSvc))
	router.POST("/login", loginRateLimiter(opts.LoginRatePerMin), loginHandler(deps.CustomerSvc))

	me := router.Group("/me", authMiddleware(deps.CustomerSvc))
	{
		me.GET("", profileHandler())
		me.PUT("", updateProfileHandler(deps.CustomerSvc))
		me.POST("/password", changePasswordHandler(deps.CustomerSvc))
		me.POST("/logout", logoutHandler(deps.CustomerSvc))

		me.GET("/cart", cartHandler(deps.CartSvc))
		me.PUT("/cart/items/:bookId", setCartItemHandler(deps.CartSvc))
		me.DELETE("/cart/items/:bookId", removeCartItemHandler(deps.CartSvc))
		me.DELETE("/cart", clearCartHandler(deps.CartSvc))

		me.POST("/orders", checkoutHandler(deps.OrderSvc, deps.CartSvc))
		me.GET("/orders", listOrdersHandler(deps.OrderSvc))
		me.GET("/orders/:orderId", getOrderHandler(deps.OrderSvc))
		me.POST("/orders/:orderId/statuses", appendStatusHandler(deps.OrderSvc))

		if deps.ReviewSvc != nil {
			me.PUT("/reviews/:bookId", upsertReviewHandler(deps.ReviewSvc))
		}
	}

	return router, nil
}

func corsMiddleware(origins string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if origins == "" || origins == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
