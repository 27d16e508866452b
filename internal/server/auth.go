package server

import (
	"strings"
	"sync"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/appcontext"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/owner/token"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const contextOwnerIDKey = "owner_id"

// TokenRequired authenticates requests with an API token of the form
// "<owner_id>.<secret>". The secret is verified against the owner's stored
// argon2id hash.
func (s *Server) TokenRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		idPart, secret, ok := strings.Cut(parts[1], ".")
		if !ok || secret == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		ownerID, err := snowflake.ParseString(idPart)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		owner, err := s.owners.FindByID(c.Request.Context(), ownerID)
		if err != nil || owner == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !token.Verify(secret, owner.APITokenHash) {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextOwnerIDKey, ownerID)
		c.Request = c.Request.WithContext(appcontext.WithOwnerID(c.Request.Context(), ownerID))
		c.Next()
	}
}

func (s *Server) ownerFromRequest(c *gin.Context) (snowflake.ID, bool) {
	value, ok := c.Get(contextOwnerIDKey)
	if !ok {
		return 0, false
	}
	ownerID, ok := value.(snowflake.ID)
	return ownerID, ok
}

// ownerLimiters hands out one token bucket per authenticated owner.
type ownerLimiters struct {
	perMinute int

	mu    sync.Mutex
	items map[snowflake.ID]*rate.Limiter
}

func newOwnerLimiters(perMinute int) *ownerLimiters {
	return &ownerLimiters{
		perMinute: perMinute,
		items:     make(map[snowflake.ID]*rate.Limiter),
	}
}

func (l *ownerLimiters) get(ownerID snowflake.ID) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter := l.items[ownerID]
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute)
		l.items[ownerID] = limiter
	}
	return limiter
}

// RateLimited enforces the per-owner request budget. It must run after
// TokenRequired.
func (s *Server) RateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := s.ownerFromRequest(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !s.limiters.get(ownerID).Allow() {
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}
