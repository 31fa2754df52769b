package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"kovan/middleware"
	"kovan/models"
	"kovan/services"
	"kovan/validation"
)

const googleStateCookie = "google_oauth_state"

type LoginRequest struct {
	// Identifier is an email address or a username.
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type authResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	IsNewUser bool         `json:"isNewUser,omitempty"`
}

func (h *Handler) Register(c *gin.Context) {
	var req validation.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.svc.Auth.Register(ctx, req)
	if err != nil {
		fail(c, "Register", err)
		return
	}

	token, err := middleware.GenerateToken(h.secret, user.ID, h.tokenTTL)
	if err != nil {
		log.Printf("[Register] token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusCreated, authResponse{Message: "User created successfully", Token: token, User: user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Identifier == "" {
		req.Identifier = req.Email
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.svc.Auth.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		fail(c, "Login", err)
		return
	}

	token, err := middleware.GenerateToken(h.secret, user.ID, h.tokenTTL)
	if err != nil {
		log.Printf("[Login] token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, authResponse{Message: "Login successful", Token: token, User: user})
}

// GoogleLoginURL returns the Google consent page URL and remembers its state
// in a short-lived cookie.
func (h *Handler) GoogleLoginURL(c *gin.Context) {
	state := uuid.Must(uuid.NewV4()).String()
	url, err := h.svc.Auth.GoogleAuthURL(state)
	if errors.Is(err, services.ErrGoogleDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(googleStateCookie, state, 600, "/api/google", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GoogleCallback completes the Google sign-in and issues our token.
func (h *Handler) GoogleCallback(c *gin.Context) {
	if msg := c.Query("error"); msg != "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed: " + msg})
		return
	}
	state, err := c.Cookie(googleStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(googleStateCookie, "", -1, "/api/google", "", c.Request.TLS != nil, true)

	ctx, cancel := requestContext(c)
	defer cancel()

	user, created, err := h.svc.Auth.GoogleLogin(ctx, c.Query("code"))
	switch {
	case errors.Is(err, services.ErrGoogleDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	case errors.Is(err, services.ErrGoogleExchange):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to sign in with Google"})
		return
	case err != nil:
		fail(c, "GoogleCallback", err)
		return
	}

	token, err := middleware.GenerateToken(h.secret, user.ID, h.tokenTTL)
	if err != nil {
		log.Printf("[GoogleCallback] token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	log.Printf("✅ Google authentication successful for: %s", user.Email)
	c.JSON(http.StatusOK, authResponse{Message: "Authentication successful", Token: token, User: user, IsNewUser: created})
}
