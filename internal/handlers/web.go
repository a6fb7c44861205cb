package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Yunxiang777/accounts/internal/auth"
	dom "github.com/Yunxiang777/accounts/internal/domain"
	"github.com/Yunxiang777/accounts/internal/dto"
	"github.com/Yunxiang777/accounts/internal/service"

	"github.com/gin-gonic/gin"
)

// WebHandler handles the browser flows: form-posted auth with
// cookie-backed sessions and redirect-based navigation. View rendering
// lives with the frontend; these endpoints answer JSON or redirects.
type WebHandler struct {
	sessions *auth.Store
	userSvc  *service.UserService
	entrySvc *service.EntryService
}

// NewWebHandler returns a new WebHandler.
func NewWebHandler(sessions *auth.Store, userSvc *service.UserService, entrySvc *service.EntryService) *WebHandler {
	return &WebHandler{sessions: sessions, userSvc: userSvc, entrySvc: entrySvc}
}

// LoginPage is the login entry point session-less requests are
// redirected to.
func (h *WebHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login", "action": "POST /login"})
}

// RegisterPage is the registration entry point.
func (h *WebHandler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register", "action": "POST /reg"})
}

// Login validates form credentials and establishes a session.
func (h *WebHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	h.startSession(c, auth.Identity{UserID: user.ID, Username: user.Username})
}

// Register creates a user and logs them straight in.
func (h *WebHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		case errors.Is(err, service.ErrUsernameTooShort), errors.Is(err, service.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	h.startSession(c, auth.Identity{UserID: user.ID, Username: user.Username})
}

func (h *WebHandler) startSession(c *gin.Context, ident auth.Identity) {
	sessionID, err := h.sessions.Create(c.Request.Context(), ident)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(auth.SessionCookieName, sessionID, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/account")
}

// Logout destroys the session. A store failure here is fatal, not
// silently swallowed.
func (h *WebHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(auth.SessionCookieName)
	if err == nil && sessionID != "" {
		if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// Home redirects the root to the ledger listing.
func (h *WebHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/account")
}

// Account lists the ledger with its running total for the browser view.
func (h *WebHandler) Account(c *gin.Context) {
	entries, err := h.entrySvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accounts":    entriesToResponse(entries),
		"totalAmount": dom.TotalOf(entries),
		"user":        auth.IdentityFromContext(c).Username,
	})
}

// AccountCreate adds a ledger entry from a posted form and returns to
// the listing.
func (h *WebHandler) AccountCreate(c *gin.Context) {
	var req dto.WebCreateEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.entrySvc.Create(c.Request.Context(), req.Description, &amount, &date, req.Sign); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrInvalidSign):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		}
		return
	}
	c.Redirect(http.StatusFound, "/account")
}

// AccountDelete removes one entry by ID.
func (h *WebHandler) AccountDelete(c *gin.Context) {
	id, ok := parseWebID(c)
	if !ok {
		return
	}
	if err := h.entrySvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deletion successful"})
}

func parseWebID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "account not found"})
		return 0, false
	}
	return id, true
}
