// Package passkey provides WebAuthn registration and login as an
// alternative auth method producing the same canonical Identity as the
// OAuth2 flows.
package passkey

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-webauthn/webauthn/webauthn"

	"authsdk/pkg/oauth2"
)

const ceremonyCookieName = "passkey_ceremony"

// Config holds relying-party configuration
type Config struct {
	RPDisplayName string   // "Example Corp"
	RPID          string   // "example.com"
	RPOrigins     []string // ["https://example.com"]
	Timeout       time.Duration
}

// DefaultConfig returns a localhost development configuration
func DefaultConfig() Config {
	return Config{
		RPDisplayName: "authsdk",
		RPID:          "localhost",
		RPOrigins:     []string{"http://localhost:8080"},
		Timeout:       60 * time.Second,
	}
}

// Handler drives passkey ceremonies and creates sessions on login
type Handler struct {
	webAuthn *webauthn.WebAuthn
	storage  Storage
	sessions *oauth2.SessionStore
}

func NewHandler(config Config, storage Storage, sessions *oauth2.SessionStore) (*Handler, error) {
	wconfig := &webauthn.Config{
		RPDisplayName: config.RPDisplayName,
		RPID:          config.RPID,
		RPOrigins:     config.RPOrigins,
		Timeouts: webauthn.TimeoutsConfig{
			Login: webauthn.TimeoutConfig{
				Enforce: true,
				Timeout: config.Timeout,
			},
			Registration: webauthn.TimeoutConfig{
				Enforce: true,
				Timeout: config.Timeout,
			},
		},
	}

	web, err := webauthn.New(wconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create webauthn: %w", err)
	}

	return &Handler{
		webAuthn: web,
		storage:  storage,
		sessions: sessions,
	}, nil
}

// BeginRegistration starts a passkey registration ceremony
func (h *Handler) BeginRegistration(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username"})
		return
	}

	user, err := h.storage.GetUser(username)
	if err != nil {
		user, err = h.storage.CreateUser(username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	options, sessionData, err := h.webAuthn.BeginRegistration(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ceremonyID := newCeremonyID()
	if err := h.storage.SaveCeremony(ceremonyID, sessionData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ceremonyCookieName, ceremonyID, 300, "/", "", false, true)
	c.JSON(http.StatusOK, options)
}

// FinishRegistration completes the registration ceremony
func (h *Handler) FinishRegistration(c *gin.Context) {
	username := c.Query("username")
	user, err := h.storage.GetUser(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	sessionData, err := h.takeCeremony(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credential, err := h.webAuthn.FinishRegistration(user, *sessionData, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.storage.AddCredential(username, *credential); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "credential registered"})
}

// BeginLogin starts a passkey login ceremony
func (h *Handler) BeginLogin(c *gin.Context) {
	username := c.Query("username")
	user, err := h.storage.GetUser(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	options, sessionData, err := h.webAuthn.BeginLogin(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ceremonyID := newCeremonyID()
	if err := h.storage.SaveCeremony(ceremonyID, sessionData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ceremonyCookieName, ceremonyID, 300, "/", "", false, true)
	c.JSON(http.StatusOK, options)
}

// FinishLogin completes the login ceremony and creates a session with a
// webauthn-tagged Identity
func (h *Handler) FinishLogin(c *gin.Context) {
	username := c.Query("username")
	user, err := h.storage.GetUser(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	sessionData, err := h.takeCeremony(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credential, err := h.webAuthn.FinishLogin(user, *sessionData, c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	h.storage.UpdateCredential(username, *credential)

	identity := &oauth2.Identity{
		ID: oauth2.IdentityID{
			ProviderUserID: user.Username,
			Provider:       "passkey",
		},
		FullName:   user.Username,
		AuthMethod: oauth2.AuthMethodWebauthn,
	}

	session, err := h.sessions.Create(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("session_id", session.ID, 86400, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Authenticated as: %s", user.Username),
		"identity": identity,
	})
}

// RegisterRoutes mounts the passkey endpoints
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	grp := r.Group("/passkey")
	{
		grp.GET("/register/begin", h.BeginRegistration)
		grp.POST("/register/finish", h.FinishRegistration)
		grp.GET("/login/begin", h.BeginLogin)
		grp.POST("/login/finish", h.FinishLogin)
	}
}

func (h *Handler) takeCeremony(c *gin.Context) (*webauthn.SessionData, error) {
	ceremonyID, err := c.Cookie(ceremonyCookieName)
	if err != nil {
		return nil, ErrCeremonyNotFound
	}
	return h.storage.TakeCeremony(ceremonyID)
}
