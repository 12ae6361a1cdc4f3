package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/imagehub/imagehub-web/internal/pkg/config"
)

// maxTrackedClients bounds the limiter table; it is reset when full.
const maxTrackedClients = 10000

// FormRateLimiter applies a token bucket per client IP. A disabled limit is a
// passthrough.
func FormRateLimiter(cfg config.RateLimit) echo.MiddlewareFunc {
	if !cfg.Enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			mu.Lock()
			l, ok := limiters[ip]
			if !ok {
				if len(limiters) >= maxTrackedClients {
					limiters = make(map[string]*rate.Limiter)
				}
				l = rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
				limiters[ip] = l
			}
			allowed := l.Allow()
			mu.Unlock()

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Demasiados intentos. Por favor, espere un momento.")
			}
			return next(c)
		}
	}
}
