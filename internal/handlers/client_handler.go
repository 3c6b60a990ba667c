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
	"github.com/RelojeriaCentral/taller-api/internal/usecase/client"
)

type ClientHandler struct {
	db     *gorm.DB
	saveUC *client.SaveClient
}

func NewClientHandler(db *gorm.DB, saveUC *client.SaveClient) *ClientHandler {
	return &ClientHandler{db: db, saveUC: saveUC}
}

// --------- Requests ---------

type ClientRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	page := pagination.FromQuery(c, pagination.DefaultPageSize)

	q := h.db.Model(&models.Client{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Error interno.")
		return
	}

	var clients []models.Client
	if err := page.Scope(q).
		Order("surname ASC, name ASC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Error interno.")
		return
	}

	httpresp.Page(c, clients, total, page.Page, page.PageSize)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	created, err := h.saveUC.Create(c.Request.Context(), userID, client.Input{
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.Phone,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ClientHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updated, err := h.saveUC.Update(c.Request.Context(), userID, id, client.Input{
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.Phone,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, updated)
}
