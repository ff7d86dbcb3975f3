package middleware

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"renovirt-backend/internal/config"
	"renovirt-backend/internal/logger"
)

// SessionCookie carries the Supabase access token for browser page routes.
const SessionCookie = "rv_session"

// PageAuth guards browser routes. Unauthenticated requests are redirected to
// the login screen with the original location preserved for the post-login
// return.
func PageAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil {
			if userID, perr := ParseUserID(cfg, token); perr == nil {
				c.Set(UserIDKey, userID)
				c.Next()
				return
			}
		}

		redirect := "/auth?redirect=" + url.QueryEscape(c.Request.URL.Path)
		c.Redirect(http.StatusFound, redirect)
		c.Abort()
	}
}

// RoleChecker is the trusted source of truth for the admin role flag.
type RoleChecker interface {
	HasAdminRole(userID uuid.UUID) (bool, error)
}

// AdminVerifier caches successful admin-role checks and forces a fresh check
// against the backend once the re-verify interval has elapsed. The role is
// never cached indefinitely.
type AdminVerifier struct {
	checker  RoleChecker
	interval time.Duration

	mu       sync.Mutex
	verified map[uuid.UUID]time.Time
	now      func() time.Time
}

func NewAdminVerifier(checker RoleChecker, interval time.Duration) *AdminVerifier {
	return &AdminVerifier{
		checker:  checker,
		interval: interval,
		verified: make(map[uuid.UUID]time.Time),
		now:      time.Now,
	}
}

// IsAdmin reports whether the user holds the admin role, re-checking against
// the backend when the cached verification has expired.
func (v *AdminVerifier) IsAdmin(userID uuid.UUID) (bool, error) {
	v.mu.Lock()
	last, ok := v.verified[userID]
	fresh := ok && v.now().Sub(last) < v.interval
	v.mu.Unlock()

	if fresh {
		return true, nil
	}

	isAdmin, err := v.checker.HasAdminRole(userID)
	if err != nil {
		return false, err
	}

	v.mu.Lock()
	if isAdmin {
		v.verified[userID] = v.now()
	} else {
		delete(v.verified, userID)
	}
	v.mu.Unlock()
	return isAdmin, nil
}

// Invalidate drops the cached verification, forcing the next check to hit the
// backend.
func (v *AdminVerifier) Invalidate(userID uuid.UUID) {
	v.mu.Lock()
	delete(v.verified, userID)
	v.mu.Unlock()
}

// SessionStale reports whether the user has a previously verified admin
// session whose re-verify interval has elapsed.
func (v *AdminVerifier) SessionStale(userID uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	last, ok := v.verified[userID]
	return ok && v.now().Sub(last) >= v.interval
}

// RequireAdmin gates a page route on the admin role. Non-admins are sent to
// the regular dashboard rather than an error page, so the admin route is not
// revealed.
func RequireAdmin(verifier *AdminVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr, exists := c.Get(UserIDKey)
		if !exists {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr.(string))
		if err != nil {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		isAdmin, err := verifier.IsAdmin(userID)
		if err != nil || !isAdmin {
			if err != nil {
				logger.Log.Error("admin role check failed", zap.Error(err))
			}
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIRequireAdmin is the JSON variant for /api/v1/admin routes. It answers 404
// instead of 403 so the admin surface stays hidden from non-admins.
func APIRequireAdmin(verifier *AdminVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr, exists := c.Get(UserIDKey)
		if !exists {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		userID, err := uuid.Parse(userIDStr.(string))
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		isAdmin, err := verifier.IsAdmin(userID)
		if err != nil || !isAdmin {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

// SecureAdminSession is the stricter wrapper for the back-office: once a
// previously verified admin session goes stale the role is re-checked against
// the backend, and a failed re-check sends the user to the separate admin
// login route. Users without a prior secure session fall through to
// RequireAdmin.
func SecureAdminSession(verifier *AdminVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr, exists := c.Get(UserIDKey)
		if !exists {
			c.Redirect(http.StatusFound, "/admin-auth")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr.(string))
		if err != nil {
			c.Redirect(http.StatusFound, "/admin-auth")
			c.Abort()
			return
		}

		if verifier.SessionStale(userID) {
			verifier.Invalidate(userID)
			isAdmin, err := verifier.IsAdmin(userID)
			if err != nil || !isAdmin {
				logger.Security("admin_session_reverify_failed", zap.String("user_id", userID.String()))
				c.Redirect(http.StatusFound, "/admin-auth")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
