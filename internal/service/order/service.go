package order

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"strings"

	"bookhaven/internal/domain"
	orderrepo "bookhaven/internal/repository/order"
)

// loyaltyDivisorCents converts an order total into loyalty points:
// 1 point per 10 currency units, floor division.
const loyaltyDivisorCents = 1000

type Service struct {
	repo      orderrepo.Repository
	customers loyaltyAwarder
	carts     cartClearer
	logger    *log.Logger
}

type loyaltyAwarder interface {
	AddLoyaltyPoints(ctx context.Context, customerID string, points int) error
}

type cartClearer interface {
	Clear(ctx context.Context, customerID string) error
}

func New(repo orderrepo.Repository, customers loyaltyAwarder, carts cartClearer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, customers: customers, carts: carts, logger: logger}
}

// Placed is the result of a successful placement.
type Placed struct {
	OrderID    string `json:"orderId"`
	TotalCents int64  `json:"totalCents"`
}

// Place creates an order from the given items atomically: header, stock
// decrements, line items with price snapshots, total, and the initial "New"
// status either all commit or none do.
//
// Loyalty points and the persisted-cart clear happen after commit and are
// not covered by the transaction; a crash in between leaves a committed
// order with a stale cart, which the storefront reconciles on next load.
func (s *Service) Place(ctx context.Context, customerID string, items map[string]int, shippingAddress, paymentMethod string) (*Placed, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, domain.ErrMissingAddress
	}

	// Non-positive quantities are skipped, not fatal.
	bookIDs := make([]string, 0, len(items))
	for bookID, qty := range items {
		if qty <= 0 {
			s.logger.Printf("order service: skipping book %s with quantity %d", bookID, qty)
			continue
		}
		bookIDs = append(bookIDs, bookID)
	}
	if len(bookIDs) == 0 {
		return nil, domain.ErrEmptyCart
	}
	// Lock rows in a deterministic order so concurrent placements cannot
	// deadlock on each other.
	sort.Strings(bookIDs)

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	placed, err := s.placeInTx(ctx, tx, customerID, bookIDs, items, shippingAddress, paymentMethod)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Printf("order service: rollback customer_id=%s error=%v", customerID, rbErr)
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.logger.Printf("order service: placed order_id=%s customer_id=%s total_cents=%d", placed.OrderID, customerID, placed.TotalCents)

	s.afterCommit(ctx, customerID, placed.TotalCents)
	return placed, nil
}

func (s *Service) placeInTx(ctx context.Context, tx orderrepo.Tx, customerID string, bookIDs []string, items map[string]int, shippingAddress, paymentMethod string) (*Placed, error) {
	orderID, err := tx.InsertHeader(ctx, customerID, shippingAddress, paymentMethod)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, bookID := range bookIDs {
		qty := items[bookID]

		price, stock, err := tx.BookPriceAndStock(ctx, bookID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &domain.ItemNotFoundError{BookID: bookID}
			}
			return nil, err
		}
		if qty > stock {
			return nil, &domain.InsufficientStockError{BookID: bookID, Requested: qty, Available: stock}
		}

		// The row lock above already serializes writers; the stock >= qty
		// predicate stays as a second check and reports races as zero
		// affected rows.
		affected, err := tx.DecrementStock(ctx, bookID, qty)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, &domain.InsufficientStockError{BookID: bookID, Requested: qty, Available: stock}
		}

		// Price captured under the lock, not re-read later.
		if err := tx.InsertItem(ctx, orderID, bookID, qty, price); err != nil {
			return nil, err
		}
		total += price * int64(qty)
	}

	if err := tx.UpdateTotal(ctx, orderID, total); err != nil {
		return nil, err
	}
	if err := tx.InsertStatus(ctx, orderID, domain.StatusNew); err != nil {
		return nil, err
	}
	return &Placed{OrderID: orderID, TotalCents: total}, nil
}

// afterCommit performs the best-effort side effects of a placed order.
// Failures are logged and never surfaced: the order is already committed.
func (s *Service) afterCommit(ctx context.Context, customerID string, totalCents int64) {
	if points := int(totalCents / loyaltyDivisorCents); points > 0 {
		if err := s.customers.AddLoyaltyPoints(ctx, customerID, points); err != nil {
			s.logger.Printf("order service: award %d loyalty points customer_id=%s error=%v", points, customerID, err)
		}
	}
	if err := s.carts.Clear(ctx, customerID); err != nil {
		s.logger.Printf("order service: clear cart customer_id=%s error=%v", customerID, err)
	}
}

// List returns the customer's orders, newest first, each with its status
// history attached.
func (s *Service) List(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) Get(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, customerID, orderID)
}

// AppendStatus adds one entry to an order's status history.
func (s *Service) AppendStatus(ctx context.Context, customerID, orderID, label, trackingNumber string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errors.New("status label required")
	}
	// Verify ownership before writing.
	if _, err := s.repo.GetByID(ctx, customerID, orderID); err != nil {
		return err
	}
	return s.repo.AppendStatus(ctx, orderID, label, strings.TrimSpace(trackingNumber))
}
