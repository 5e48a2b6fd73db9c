package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/hueyning/kanban-app/internal/auth"
	"github.com/hueyning/kanban-app/internal/dto"
	"github.com/hueyning/kanban-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles register, login and logout.
type AuthHandler struct {
	sessions   auth.Sessions
	userSvc    *service.UserService
	sessionTTL time.Duration
}

// NewAuthHandler returns a new AuthHandler. sessionTTL drives the session
// cookie's lifetime and must match the store's TTL.
func NewAuthHandler(sessions auth.Sessions, userSvc *service.UserService, sessionTTL time.Duration) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{sessions: sessions, userSvc: userSvc, sessionTTL: sessionTTL}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(auth.SessionCookieName, sessionID, int(h.sessionTTL.Seconds()), "/", "", false, true) // httpOnly
}

// RegisterForm godoc
// @Summary      Describe the registration form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.FormResponse
// @Router       /register [get]
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FormResponse{
		Action: "/register",
		Fields: []dto.FormField{
			{Name: "username", Type: "text", Required: true},
			{Name: "email", Type: "text", Required: true},
			{Name: "password", Type: "password", Required: true},
			{Name: "confirm", Type: "password", Required: true},
		},
	})
}

// Register godoc
// @Summary      Register a new user and log them in
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Credentials"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Confirm)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "that username is already taken, please choose another"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	// Registration doubles as login: a fresh session, no separate step.
	sessionID, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	h.setSessionCookie(c, sessionID)
	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"message": "thanks for registering!",
		"user":    dto.UserResponse{ID: user.ID, Username: user.Username},
	})
}

// LoginForm godoc
// @Summary      Describe the login form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.FormResponse
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FormResponse{
		Action: "/login",
		Fields: []dto.FormField{
			{Name: "username", Type: "text", Required: true},
			{Name: "password", Type: "password", Required: true},
		},
	})
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same response for unknown user and wrong password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials, try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	sessionID, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	h.setSessionCookie(c, sessionID)
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "you are now logged in",
		"user":    dto.UserResponse{ID: user.ID, Username: user.Username},
	})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(auth.SessionCookieName)
	if err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "you have been logged out"})
}
