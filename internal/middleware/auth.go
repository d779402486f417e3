// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import (
	"strings"

	"github.com/fluffyriot/shareline/internal/authhelp"
	"github.com/fluffyriot/shareline/internal/database"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const actorKey = "shareline_actor"

// ActorMiddleware resolves the caller to an actor id, either from a bearer
// token ("<actor-uuid>.<secret>" checked against api_tokens) or from the
// cookie session. It never rejects: anonymous callers stay anonymous and the
// handlers decide whether an actor is required.
func ActorMiddleware(db *database.Queries) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authz := c.GetHeader("Authorization"); strings.HasPrefix(authz, "Bearer ") {
			raw := strings.TrimPrefix(authz, "Bearer ")
			if actor, ok := actorFromToken(c, db, raw); ok {
				c.Set(actorKey, actor)
			}
			c.Next()
			return
		}

		session := sessions.Default(c)
		if s, ok := session.Get("actor_id").(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				c.Set(actorKey, id)
			}
		}
		c.Next()
	}
}

func actorFromToken(c *gin.Context, db *database.Queries, raw string) (uuid.UUID, bool) {
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 {
		return uuid.Nil, false
	}

	actor, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, false
	}

	if db == nil {
		// Dev mode has no token table; a fixed dev secret keeps local
		// requests attributable without real credentials.
		if parts[1] == "dev" {
			return actor, true
		}
		return uuid.Nil, false
	}

	tokens, err := db.GetApiTokensByActor(c.Request.Context(), actor)
	if err != nil {
		return uuid.Nil, false
	}
	for _, t := range tokens {
		if authhelp.CheckTokenHash(t.TokenHash, parts[1]) {
			return actor, true
		}
	}
	return uuid.Nil, false
}

func GetActor(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
