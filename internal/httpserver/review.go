package httpserver

import (
	"errors"
	"net/http"

	"bookhaven/internal/domain"
	reviewsvc "bookhaven/internal/service/review"
	"github.com/gin-gonic/gin"
)

func listReviewsHandler(svc ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := svc.ListByBook(c.Request.Context(), c.Param("bookId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reviews"})
			return
		}
		if reviews == nil {
			reviews = []domain.Review{}
		}
		c.JSON(http.StatusOK, gin.H{"results": reviews})
	}
}

func ratingSummaryHandler(svc ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.Summary(c.Request.Context(), c.Param("bookId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load rating"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func upsertReviewHandler(svc ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in reviewsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		review, err := svc.Upsert(c.Request.Context(), currentCustomer(c).ID, c.Param("bookId"), in)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"review": review})
	}
}
