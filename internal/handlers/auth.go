package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imagedrop/api/internal/service"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Success!"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)

	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

func (h HandlerSet) CheckLoginStatus(c *gin.Context) {
	token, err := c.Cookie(h.cfg.Security.CookieName)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isLoggedIn": h.auth.LoginStatus(token)})
}

// Logout clears the session cookie client-side. The token itself stays
// valid until it expires; stateless tokens cannot be revoked.
func (h HandlerSet) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.Security.CookieName, "", -1, "/", "", h.cfg.Production(), true)

	c.JSON(http.StatusOK, gin.H{"msg": "Logged out successfully"})
}

func (h HandlerSet) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.cfg.Security.CookieTTL.Seconds())
	c.SetCookie(h.cfg.Security.CookieName, token, maxAge, "/", "", h.cfg.Production(), true)
}
