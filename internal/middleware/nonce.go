// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// NonceGuard rejects replays of mutating requests before they reach the
// engines. Clients send a fresh X-Shareline-Nonce per intended action;
// resubmitting one (double click, browser retry) gets a conflict instead of
// a second counter increment.
type NonceGuard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
}

func NewNonceGuard(ttl time.Duration) *NonceGuard {
	return &NonceGuard{
		seen: make(map[string]time.Time),
		ttl:  ttl,
	}
}

func (g *NonceGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		nonce := c.GetHeader("X-Shareline-Nonce")
		if nonce == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":    false,
				"error_code": "missing_nonce",
				"message":    "X-Shareline-Nonce header is required",
			})
			c.Abort()
			return
		}

		var key string
		if actor, ok := GetActor(c); ok {
			key = actor.String() + ":" + nonce
		} else {
			key = c.ClientIP() + ":" + nonce
		}

		g.mu.Lock()
		g.sweepLocked(time.Now())
		if _, dup := g.seen[key]; dup {
			g.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{
				"success":    false,
				"error_code": "replayed_nonce",
				"message":    "request nonce was already used",
			})
			c.Abort()
			return
		}
		g.seen[key] = time.Now().Add(g.ttl)
		g.mu.Unlock()

		c.Next()
	}
}

func (g *NonceGuard) sweepLocked(now time.Time) {
	for k, exp := range g.seen {
		if now.After(exp) {
			delete(g.seen, k)
		}
	}
}
