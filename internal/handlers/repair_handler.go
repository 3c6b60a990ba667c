package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/RelojeriaCentral/taller-api/internal/domain/repair"
	"github.com/RelojeriaCentral/taller-api/internal/dto"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/httpresp"
	"github.com/RelojeriaCentral/taller-api/internal/middleware"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/pagination"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/repair"
)

type RepairHandler struct {
	db       *gorm.DB
	createUC *repair.CreateRepairOrder
	updateUC *repair.UpdateRepairOrder
	listUC   *repair.ListRepairOrders
}

func NewRepairHandler(
	db *gorm.DB,
	createUC *repair.CreateRepairOrder,
	updateUC *repair.UpdateRepairOrder,
	listUC *repair.ListRepairOrders,
) *RepairHandler {
	return &RepairHandler{
		db:       db,
		createUC: createUC,
		updateUC: updateUC,
		listUC:   listUC,
	}
}

// --------- Requests ---------

type RepairOrderRequest struct {
	ClientID          uint   `json:"client_id"`
	TechnicianID      uint   `json:"technician_id"`
	WatchBrand        string `json:"watch_brand"`
	Description       string `json:"description"`
	OrderCode         string `json:"order_code"`
	EstimatedDelivery string `json:"estimated_delivery"`
	Price             int64  `json:"price"`
	Location          string `json:"location"`
	Status            string `json:"status"`
}

func (r RepairOrderRequest) toInput() domain.Input {
	return domain.Input{
		ClientID:          r.ClientID,
		TechnicianID:      r.TechnicianID,
		WatchBrand:        strings.TrimSpace(r.WatchBrand),
		Description:       strings.TrimSpace(r.Description),
		OrderCode:         strings.TrimSpace(r.OrderCode),
		EstimatedDelivery: strings.TrimSpace(r.EstimatedDelivery),
		Price:             r.Price,
		Location:          strings.TrimSpace(r.Location),
		Status:            r.Status,
	}
}

// ======================================================
// CREATE / UPDATE / GET
// ======================================================

func (h *RepairHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req RepairOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	order, err := h.createUC.Execute(c.Request.Context(), userID, req.toInput())
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *RepairHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RepairOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	order, err := h.updateUC.Execute(c.Request.Context(), userID, id, req.toInput())
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, order)
}

func (h *RepairHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var order models.RepairOrder
	err := h.db.WithContext(c.Request.Context()).
		Preload("Client").
		Preload("Technician").
		First(&order, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "repair_order_not_found", "Orden de reparación no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_repair_order", "Error interno.")
		return
	}

	httpresp.OK(c, order)
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *RepairHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	page := pagination.FromQuery(c, repair.PageSize)

	result, err := h.listUC.Execute(c.Request.Context(), query, page)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	out := make([]dto.RepairOrderListDTO, 0, len(result.Orders))
	for _, o := range result.Orders {
		out = append(out, dto.FromRepairOrder(o))
	}

	httpresp.Page(c, out, result.Total, page.Page, page.PageSize)
}
