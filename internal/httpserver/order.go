package httpserver

import (
	"errors"
	"net/http"

	"bookhaven/internal/domain"
	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

type appendStatusRequest struct {
	Label          string `json:"label" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
}

// checkoutHandler places an order from the customer's persisted cart. The
// cart itself is cleared by the order service after the order commits, so a
// failed placement leaves the cart intact for the client to re-fetch.
func checkoutHandler(orders OrderService, carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		customer := currentCustomer(c)

		cartItems, err := carts.Items(c.Request.Context(), customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		items := make(map[string]int, len(cartItems))
		for _, it := range cartItems {
			items[it.BookID] = it.Quantity
		}

		placed, err := orders.Place(c.Request.Context(), customer.ID, items, in.ShippingAddress, in.PaymentMethod)
		if err != nil {
			writePlacementError(c, err)
			return
		}
		c.JSON(http.StatusCreated, placed)
	}
}

func writePlacementError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	var missingErr *domain.ItemNotFoundError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, domain.ErrMissingAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": "shipping address required"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient stock",
			"bookId":    stockErr.BookID,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.As(err, &missingErr):
		c.JSON(http.StatusConflict, gin.H{"error": "book no longer available", "bookId": missingErr.BookID})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order placement failed"})
	}
}

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"results": orders})
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), currentCustomer(c).ID, c.Param("orderId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func appendStatusHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in appendStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		err := svc.AppendStatus(c.Request.Context(), currentCustomer(c).ID, c.Param("orderId"), in.Label, in.TrackingNumber)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusCreated)
	}
}
