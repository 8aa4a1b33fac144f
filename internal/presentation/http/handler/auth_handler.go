package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/internal/application/service"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-pos/pkg/utils"
)

// AuthHandler signs operators in at the terminal.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges an operator's name and PIN for a session token.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Operator name and PIN"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		PIN:      req.PIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", output)
}

// Me describes the signed-in operator and when the session ends, so the
// terminal can ask for the PIN before a sale is interrupted.
func (h *AuthHandler) Me(c *gin.Context) {
	id := GetOperatorID(c)
	if id == nil {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	session := gin.H{
		"id":    id,
		"name":  GetOperatorName(c),
		"roles": GetOperatorRoles(c),
	}
	if expiry := c.GetTime(utils.ContextSessionExpiry); !expiry.IsZero() {
		session["expires_at"] = expiry.UTC().Format(time.RFC3339)
		session["expires_in"] = int64(time.Until(expiry).Seconds())
	}

	response.OK(c, "Operator retrieved", session)
}
