package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimitMiddleware 以redis計數器做固定視窗限流, 以client IP為key
// redis異常時放行, 限流屬於保護機制不應成為單點故障
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(window.Seconds()))

			ctx := r.Context()
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				if logger != nil {
					logger.Warn().Err(err).Msg("rate limit counter unavailable, passing through")
				}
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, window)
			}

			if count > int64(limit) {
				api.ErrorJSON(w, apperr.TooManyRequestCode, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
