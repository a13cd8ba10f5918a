package httpserver

import (
	"errors"
	"net/http"

	"bookhaven/internal/domain"
	"github.com/gin-gonic/gin"
)

type setCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func cartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.Items(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		if items == nil {
			items = []domain.CartItem{}
		}
		var total int64
		for _, it := range items {
			total += it.PriceCents * int64(it.Quantity)
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "totalCents": total})
	}
}

func setCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in setCartItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		err := svc.SetItem(c.Request.Context(), currentCustomer(c).ID, c.Param("bookId"), in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.RemoveItem(c.Request.Context(), currentCustomer(c).ID, c.Param("bookId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove item"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), currentCustomer(c).ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
