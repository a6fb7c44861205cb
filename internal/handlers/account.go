package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	dom "github.com/Yunxiang777/accounts/internal/domain"
	"github.com/Yunxiang777/accounts/internal/dto"
	"github.com/Yunxiang777/accounts/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles the bearer-token ledger API.
type AccountHandler struct {
	svc *service.EntryService
}

// NewAccountHandler returns a new AccountHandler.
func NewAccountHandler(svc *service.EntryService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// List godoc
// @Summary      List all entries with the running total
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response
// @Router       /account [get]
func (h *AccountHandler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeServerError, "failed to retrieve data"))
		return
	}
	c.JSON(http.StatusOK, dto.OK("data retrieved successfully", dto.ListEntriesResponse{
		Accounts:    entriesToResponse(entries),
		TotalAmount: dom.TotalOf(entries),
	}))
}

// Create godoc
// @Summary      Create a ledger entry
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEntryRequest  true  "Entry"
// @Success      200   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /account/create [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		code, msg := bindErrorCode(err)
		c.JSON(http.StatusBadRequest, dto.Fail(code, msg))
		return
	}
	_, err := h.svc.Create(c.Request.Context(), req.Description, req.Amount.Ptr(), req.Date.Ptr(), req.Sign)
	if err != nil {
		h.writeError(c, err, "failed to create entry")
		return
	}
	c.JSON(http.StatusOK, dto.OK("entry created successfully", nil))
}

// GetByID godoc
// @Summary      Get one entry by ID
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Entry ID"
// @Success      200  {object}  dto.Response
// @Router       /account/{id} [get]
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.OK("entry retrieved successfully", entryToResponse(e)))
}

// Update godoc
// @Summary      Partially update an entry
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                     true  "Entry ID"
// @Param        body  body  dto.UpdateEntryRequest  true  "Fields to change"
// @Success      200   {object}  dto.Response
// @Router       /account/{id} [patch]
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		code, msg := bindErrorCode(err)
		c.JSON(http.StatusBadRequest, dto.Fail(code, msg))
		return
	}
	var amount *int64
	if req.Amount != nil {
		amount = req.Amount.Ptr()
	}
	var date *time.Time
	if req.Date != nil {
		date = req.Date.Ptr()
	}
	e, err := h.svc.Update(c.Request.Context(), id, req.Description, amount, date, req.Sign)
	if err != nil {
		h.writeError(c, err, "failed to update entry")
		return
	}
	c.JSON(http.StatusOK, dto.OK("entry updated successfully", entryToResponse(e)))
}

// Delete godoc
// @Summary      Delete an entry
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Entry ID"
// @Success      200  {object}  dto.Response
// @Router       /account/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "failed to delete entry")
		return
	}
	c.JSON(http.StatusOK, dto.OK("entry deleted successfully", nil))
}

// writeError maps service errors onto envelope codes at the boundary;
// nothing propagates past it.
func (h *AccountHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusOK, dto.Fail(dto.CodeEntryNotFound, "entry not found"))
	case errors.Is(err, service.ErrMissingField):
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeMissingField, err.Error()))
	case errors.Is(err, service.ErrInvalidSign):
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidSign, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeServerError, fallback))
	}
}

// bindErrorCode distinguishes the strict field parsers' failures from
// plain malformed bodies.
func bindErrorCode(err error) (string, string) {
	switch {
	case errors.Is(err, dto.ErrNotInteger):
		return dto.CodeNotInteger, err.Error()
	case errors.Is(err, dto.ErrInvalidDate):
		return dto.CodeInvalidDate, err.Error()
	}
	return dto.CodeMissingField, "invalid request body"
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, dto.Fail(dto.CodeEntryNotFound, "entry not found"))
		return 0, false
	}
	return id, true
}

func entryToResponse(e dom.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format("2006-01-02"),
		Sign:        string(e.Sign),
	}
}

func entriesToResponse(entries []dom.Entry) []dto.EntryResponse {
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToResponse(e))
	}
	return out
}
