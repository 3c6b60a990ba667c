package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/httpresp"
	"github.com/RelojeriaCentral/taller-api/internal/middleware"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/pagination"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/sale"
)

type BatterySaleHandler struct {
	db          *gorm.DB
	recordUC    *sale.RecordBatterySale
	defaultMode sale.BatchMode
}

func NewBatterySaleHandler(
	db *gorm.DB,
	recordUC *sale.RecordBatterySale,
	defaultMode sale.BatchMode,
) *BatterySaleHandler {
	return &BatterySaleHandler{
		db:          db,
		recordUC:    recordUC,
		defaultMode: defaultMode,
	}
}

// --------- Requests ---------

type RecordSaleRequest struct {
	Lines []sale.Line `json:"lines"`
	// optional override of the configured batch mode
	BatchMode string `json:"batch_mode"`
}

// ======================================================
// RECORD
// ======================================================

func (h *BatterySaleHandler) Record(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	mode := h.defaultMode
	if req.BatchMode != "" {
		mode = sale.ParseBatchMode(req.BatchMode)
	}

	result, err := h.recordUC.Execute(c.Request.Context(), userID, req.Lines, mode)
	if err != nil {
		// an all-or-nothing failure still carries the failing line
		if result != nil && result.Failure != nil {
			c.JSON(http.StatusConflict, result)
			return
		}
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ======================================================
// LIST
// ======================================================

func (h *BatterySaleHandler) List(c *gin.Context) {
	page := pagination.FromQuery(c, pagination.DefaultPageSize)

	q := h.db.Model(&models.BatterySale{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Error interno.")
		return
	}

	var sales []models.BatterySale
	if err := page.Scope(q).
		Preload("Battery").
		Order("sold_at DESC, id DESC").
		Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Error interno.")
		return
	}

	httpresp.Page(c, sales, total, page.Page, page.PageSize)
}
