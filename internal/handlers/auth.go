package handlers

import (
	"errors"
	"net/http"

	"github.com/Yunxiang777/accounts/internal/auth"
	"github.com/Yunxiang777/accounts/internal/dto"
	"github.com/Yunxiang777/accounts/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles API login and registration, issuing bearer tokens.
type AuthHandler struct {
	userSvc *service.UserService
	tokens  *auth.TokenManager
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(userSvc *service.UserService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, tokens: tokens}
}

// Login godoc
// @Summary      Login and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeMissingField, "username and password required"))
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.Fail(dto.CodeInvalidCredentials, "invalid username or password"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeServerError, "login failed"))
		return
	}
	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeServerError, "failed to generate token"))
		return
	}
	c.JSON(http.StatusOK, dto.OK("login successful", dto.TokenResponse{Token: token}))
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Credentials"
// @Success      200   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeMissingField, "username and password required"))
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, dto.Fail(dto.CodeDuplicateUsername, "username already taken"))
		case errors.Is(err, service.ErrUsernameTooShort), errors.Is(err, service.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeMissingField, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeServerError, "registration failed"))
		}
		return
	}
	c.JSON(http.StatusOK, dto.OK("registration successful", dto.UserResponse{ID: user.ID, Username: user.Username}))
}
