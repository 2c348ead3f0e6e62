package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/application/service"
	"github.com/tofrito/till-api/internal/presentation/http/dto/request"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
)

// AuthHandler handles manager authentication
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the shared manager passcode for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.ManagerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Passcode is required")
		return
	}

	token, err := h.authService.Login(req.Passcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Manager session opened", gin.H{"token": token})
}
