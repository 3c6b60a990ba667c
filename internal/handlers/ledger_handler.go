package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/httpresp"
	"github.com/RelojeriaCentral/taller-api/internal/middleware"
	"github.com/RelojeriaCentral/taller-api/internal/timezone"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/ledger"
)

type LedgerHandler struct {
	uc *ledger.Ledger
	tz string
}

func NewLedgerHandler(uc *ledger.Ledger, tz string) *LedgerHandler {
	return &LedgerHandler{uc: uc, tz: tz}
}

// --------- Requests ---------

type StageEntryRequest struct {
	Date        string `json:"date"`
	Value       int64  `json:"value"`
	Description string `json:"description"`
}

// kindParam maps the :kind path segment; anything else is rejected before
// reaching the use case.
func kindParam(c *gin.Context) (ledger.Kind, bool) {
	switch c.Param("kind") {
	case string(ledger.KindIncome):
		return ledger.KindIncome, true
	case string(ledger.KindExpense):
		return ledger.KindExpense, true
	default:
		httperr.BadRequest(c, "unknown_ledger_kind", "Tipo de movimiento desconocido.")
		return "", false
	}
}

// ======================================================
// STAGE / CONFIRM / DISCARD
// ======================================================

func (h *LedgerHandler) Stage(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	var req StageEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staged, err := h.uc.Stage(c.Request.Context(), userID, ledger.Entry{
		Kind:        kind,
		Date:        req.Date,
		Value:       req.Value,
		Description: req.Description,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, staged)
}

func (h *LedgerHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	created, err := h.uc.Confirm(c.Request.Context(), userID, kind)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *LedgerHandler) Discard(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	if err := h.uc.Discard(c.Request.Context(), userID, kind); err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) Staged(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	staged, err := h.uc.Staged(c.Request.Context(), userID, kind)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	if staged == nil {
		httperr.NotFound(c, "nothing_staged", "No hay un movimiento pendiente de confirmar.")
		return
	}

	httpresp.OK(c, staged)
}

// ======================================================
// QUERIES
// ======================================================

func (h *LedgerHandler) IncomeRange(c *gin.Context) {
	report, err := h.uc.IncomeRange(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	httpresp.OK(c, report)
}

func (h *LedgerHandler) ExpenseRange(c *gin.Context) {
	report, err := h.uc.ExpenseRange(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	httpresp.OK(c, report)
}

// IncomeTotalToday returns the running total for the shop's current day.
func (h *LedgerHandler) IncomeTotalToday(c *gin.Context) {
	total, err := h.uc.IncomeTotalForDay(c.Request.Context(), timezone.NowIn(h.tz))
	if err != nil {
		writeUsecaseError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"total": total})
}
