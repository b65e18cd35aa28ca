package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/service"
	"ourhour/weddinghub/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type SignupRequest struct {
	Email           string `json:"email" binding:"required,email,max=254"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	Name            string `json:"name" binding:"required,max=50"`
	Phone           string `json:"phone" binding:"omitempty,kphone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse is the user profile plus the issued token pair.
type AuthResponse struct {
	User *model.User `json:"user"`
	*service.TokenSet
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Name:            req.Name,
		Phone:           req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			fieldError(c, "email", err)
		case errors.Is(err, service.ErrPasswordMismatch):
			fieldError(c, "password", err)
		default:
			internalError(c, h.logger, "signup failed", err)
		}
		return
	}

	response.Created(c, AuthResponse{User: res.User, TokenSet: res.Tokens})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		internalError(c, h.logger, "login failed", err)
		return
	}

	response.Success(c, AuthResponse{User: res.User, TokenSet: res.Tokens})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "user no longer exists")
			return
		}
		internalError(c, h.logger, "load profile failed", err)
		return
	}

	response.Success(c, user)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrRefreshTokenInvalid) {
			response.Unauthorized(c, "invalid refresh token")
			return
		}
		internalError(c, h.logger, "token refresh failed", err)
		return
	}

	response.Success(c, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req LogoutRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID, req.RefreshToken); err != nil {
		if errors.Is(err, service.ErrRefreshTokenInvalid) {
			response.Unauthorized(c, "invalid refresh token")
			return
		}
		internalError(c, h.logger, "logout failed", err)
		return
	}

	response.NoContent(c)
}
