package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/httpresp"
	"github.com/RelojeriaCentral/taller-api/internal/middleware"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/pagination"
	ucBattery "github.com/RelojeriaCentral/taller-api/internal/usecase/battery"
)

const batteryPageSize = 6

type BatteryHandler struct {
	db     *gorm.DB
	saveUC *ucBattery.SaveBattery
}

func NewBatteryHandler(db *gorm.DB, saveUC *ucBattery.SaveBattery) *BatteryHandler {
	return &BatteryHandler{db: db, saveUC: saveUC}
}

// --------- Requests ---------

type BatteryRequest struct {
	Code     string `json:"code"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

func (r BatteryRequest) toInput() ucBattery.Input {
	return ucBattery.Input{
		Code:     r.Code,
		Price:    r.Price,
		Quantity: r.Quantity,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *BatteryHandler) List(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	page := pagination.FromQuery(c, batteryPageSize)

	q := h.db.Model(&models.Battery{})
	if code != "" {
		q = q.Where("code LIKE ?", "%"+code+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_batteries", "Error interno.")
		return
	}

	var batteries []models.Battery
	if err := page.Scope(q).
		Order("code ASC").
		Find(&batteries).Error; err != nil {
		httperr.Internal(c, "failed_to_list_batteries", "Error interno.")
		return
	}

	httpresp.Page(c, batteries, total, page.Page, page.PageSize)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *BatteryHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BatteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	created, err := h.saveUC.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update edits code, price and the replenished stock level. Decrements
// still only happen through the sale recorder.
func (h *BatteryHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req BatteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updated, err := h.saveUC.Update(c.Request.Context(), userID, id, req.toInput())
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, updated)
}
