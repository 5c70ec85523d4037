package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/2beens/rutinas/internal/telemetry/metrics"
	"github.com/2beens/rutinas/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

const msgTooManyRequests = "Demasiados intentos, intente nuevamente más tarde"

//go:generate mockgen -source=$GOFILE -destination=middleware_mocks_test.go -package=middleware

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per minute per client IP on the wrapped router.
// When the limiter itself fails the request goes through and the failure is logged.
func RateLimit(
	rateLimiter RequestRateLimiter,
	routerName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, err := pkg.ReadUserIP(r)
			if err != nil {
				ip = "unknown"
			}

			res, err := rateLimiter.Allow(
				r.Context(),
				fmt.Sprintf("%s:%s", routerName, ip),
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limiter [%s]: %s", routerName, err)
				next.ServeHTTP(w, r)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			log.Warnf("rate limited [%s] request from %s", routerName, ip)
			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
				if routerName == "login" {
					metricsManager.CounterLogins.WithLabelValues(metrics.LoginOutcomeRateLimited).Inc()
				}
			}

			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			pkg.WriteJSONError(w, msgTooManyRequests, http.StatusTooManyRequests)
		})
	}
}
