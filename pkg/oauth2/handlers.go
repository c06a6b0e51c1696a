package oauth2

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "session_id"
	flowCookieName    = "auth_flow"
	cookieMaxAge      = 86400 // 24 hours
	flowCookieMaxAge  = 600   // state TTL
)

// AuthHandler starts the OAuth2 flow for a provider
// @Summary Start OAuth2 login
// @Description Redirects user to the provider's login page
// @Tags oauth2
// @Produce json
// @Param provider path string true "Provider name"
// @Success 302 {string} string "Redirect"
// @Router /auth/login/{provider} [get]
func AuthHandler(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		flowKey, err := GenerateRandomString(16)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		authURL, err := manager.AuthURL(c.Request.Context(), c.Param("provider"), flowKey)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrProviderNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		// The flow cookie scopes the stored state to this browser
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flowCookieName, flowKey, flowCookieMaxAge, "/", "", false, true)

		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// CallbackHandler handles the OAuth2 callback
// @Summary OAuth2 callback
// @Description Validates state, exchanges the code and creates a session
// @Tags oauth2
// @Produce json
// @Param provider path string true "Provider name"
// @Param code query string true "OAuth2 code"
// @Param state query string true "OAuth2 state"
// @Success 200 {object} map[string]string "Authenticated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/callback/{provider} [get]
func CallbackHandler(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")

		if code == "" || state == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
			return
		}

		flowKey, err := c.Cookie(flowCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no auth flow in progress"})
			return
		}

		sessionID, identity, err := manager.HandleCallback(c.Request.Context(), c.Param("provider"), flowKey, code, state)
		if err != nil {
			c.JSON(callbackErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flowCookieName, "", -1, "/", "", false, true)
		c.SetCookie(
			sessionCookieName,
			sessionID,
			cookieMaxAge,
			"/",
			"",
			true, // Secure: only HTTPS
			true, // HttpOnly: not accessible via JavaScript
		)

		c.JSON(http.StatusOK, gin.H{
			"message":  fmt.Sprintf("Authenticated as: %s (%s)", identity.FullName, identity.Email),
			"identity": identity,
		})
	}
}

// callbackErrorStatus maps the flow error taxonomy onto HTTP statuses.
func callbackErrorStatus(err error) int {
	var specified *SpecifiedProfileError
	var netErr *NetworkError
	switch {
	case errors.Is(err, ErrStateMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, ErrProviderNotFound):
		return http.StatusNotFound
	case errors.As(err, &specified), errors.As(err, &netErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// MeHandler returns authenticated user info from session
// @Summary Get authenticated user info
// @Description Returns identity from session
// @Tags oauth2
// @Produce json
// @Success 200 {object} map[string]interface{} "Identity"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/me [get]
func MeHandler(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no session found"})
			return
		}

		session, err := manager.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"identity":   session.Identity,
			"created_at": session.CreatedAt,
			"expires_at": session.ExpiresAt,
		})
	}
}

// RefreshTokenHandler refreshes the access token using refresh token
// @Summary Refresh access token
// @Description Refreshes access token for OIDC providers
// @Tags oauth2
// @Produce json
// @Success 200 {object} map[string]string "Token refreshed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/refresh [get]
func RefreshTokenHandler(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no session found"})
			return
		}

		if err := manager.RefreshSession(c.Request.Context(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "token refreshed"})
	}
}

// LogoutHandler logs out the user by deleting the session
// @Summary Logout
// @Description Deletes user session and clears cookie
// @Tags oauth2
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Router /auth/logout [get]
func LogoutHandler(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err == nil {
			manager.DeleteSession(c.Request.Context(), sessionID)
		}

		// Clear cookie
		c.SetCookie(
			sessionCookieName,
			"",
			-1,
			"/",
			"",
			true,
			true,
		)

		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// AuthMiddleware is a middleware that validates session
func AuthMiddleware(manager *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no session found"})
			c.Abort()
			return
		}

		session, err := manager.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		// Store session in context for downstream handlers
		c.Set("session", session)
		c.Set("identity", session.Identity)

		c.Next()
	}
}
