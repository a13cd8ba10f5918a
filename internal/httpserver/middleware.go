package httpserver

import (
	"net/http"
	"strings"
	"sync"

	"bookhaven/internal/domain"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const customerCtxKey = "bookhaven.customer"

// authMiddleware resolves the bearer token into a customer and stores it in
// the gin context for downstream handlers.
func authMiddleware(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		customer, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(customerCtxKey, customer)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// currentCustomer returns the customer set by authMiddleware.
func currentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(customerCtxKey)
	if !ok {
		return nil
	}
	customer, _ := v.(*domain.Customer)
	return customer
}

// loginRateLimiter throttles credential guessing per client IP.
func loginRateLimiter(perMin int) gin.HandlerFunc {
	if perMin <= 0 {
		perMin = 10
	}
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(float64(perMin)/60.0), perMin)
			limiters[ip] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
		c.Next()
	}
}
