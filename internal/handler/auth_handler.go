package handler

import (
	"net/http"

	"creditsea/internal/middleware"
	"creditsea/internal/model"
	"creditsea/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CookieOptions controls the session cookie attributes
type CookieOptions struct {
	MaxAge int // seconds
	Secure bool
}

func (o CookieOptions) sameSite() http.SameSite {
	if o.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	cookie  CookieOptions
	log     logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, cookie CookieOptions, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{service: s, cookie: cookie, log: log}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(h.cookie.sameSite())
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, "login")
		return
	}

	h.setSessionCookie(c, token, h.cookie.MaxAge)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.log, err, "logout")
		return
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// FetchAuth returns the caller's identity, or JSON null for anonymous callers.
func (h *AuthHandler) FetchAuth(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    identity.UserID,
		"email": identity.Email,
		"role":  identity.Role,
	})
}

// RegisterAuthRoutes registers auth routes. limiter guards the credential endpoints.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, limiter gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", limiter, h.Register)
		authGroup.POST("/login", limiter, h.Login)
		authGroup.POST("/logout", middleware.RequireSession(), h.Logout)
		authGroup.GET("/fetch-auth", h.FetchAuth)
	}
}
