package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"bookhaven/internal/domain"
	"github.com/gin-gonic/gin"
)

func listBooksHandler(svc BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domain.BookFilter{
			GenreKey: c.Query("genre"),
			Query:    c.Query("q"),
		}
		filter.MinPriceCents = parseInt64Query(c, "minPriceCents")
		filter.MaxPriceCents = parseInt64Query(c, "maxPriceCents")
		if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
			filter.Limit = limit
		}

		books, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list books"})
			return
		}
		if books == nil {
			books = []domain.Book{}
		}
		c.JSON(http.StatusOK, gin.H{"results": books, "total": len(books)})
	}
}

func getBookHandler(svc BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		book, err := svc.Get(c.Request.Context(), c.Param("bookId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load book"})
			return
		}
		c.JSON(http.StatusOK, book)
	}
}

func suggestBooksHandler(svc BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		titles, err := svc.Suggest(c.Request.Context(), c.Query("q"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load suggestions"})
			return
		}
		if titles == nil {
			titles = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": titles})
	}
}

func listGenresHandler(svc GenreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		genres, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list genres"})
			return
		}
		if genres == nil {
			genres = []domain.Genre{}
		}
		c.JSON(http.StatusOK, gin.H{"results": genres})
	}
}

func parseInt64Query(c *gin.Context, key string) int64 {
	v := c.Query(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
