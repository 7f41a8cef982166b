package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yash-bansod-2003/shop-autentication/internal/config"
	"github.com/yash-bansod-2003/shop-autentication/internal/httperr"
	"github.com/yash-bansod-2003/shop-autentication/pkg/cache"
	"github.com/yash-bansod-2003/shop-autentication/pkg/logger"
)

// RateLimit bounds requests per client IP inside a fixed window, backed by
// redis so the count survives across instances. A limiter backend failure
// lets the request through with a warning; availability wins over strictness.
func RateLimit(c cache.Cache, l logger.Logger, name string, cfg config.RateLimitConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, ctx.ClientIP())
		count, err := c.Incr(ctx.Request.Context(), key, cfg.Window)
		if err != nil {
			l.Warn("rate limiter unavailable", "error", err, "name", name)
			ctx.Next()
			return
		}
		if count > int64(cfg.Requests) {
			abort(ctx, httperr.TooManyRequests("too many requests, retry later"))
			return
		}
		ctx.Next()
	}
}
