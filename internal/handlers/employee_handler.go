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
	"github.com/RelojeriaCentral/taller-api/internal/usecase/employee"
)

type EmployeeHandler struct {
	db     *gorm.DB
	saveUC *employee.SaveEmployee
}

func NewEmployeeHandler(db *gorm.DB, saveUC *employee.SaveEmployee) *EmployeeHandler {
	return &EmployeeHandler{db: db, saveUC: saveUC}
}

// --------- Requests ---------

type EmployeeRequest struct {
	Cedula    string `json:"cedula"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	HireDate  string `json:"hire_date"`
	BirthDate string `json:"birth_date"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Salary    string `json:"salary"`
	Status    string `json:"status"`
}

func (r EmployeeRequest) toInput() employee.Input {
	return employee.Input{
		Cedula:    r.Cedula,
		Name:      r.Name,
		Surname:   r.Surname,
		HireDate:  r.HireDate,
		BirthDate: r.BirthDate,
		Phone:     r.Phone,
		Role:      r.Role,
		Salary:    r.Salary,
		Status:    r.Status,
	}
}

// ======================================================
// LIST / SEARCH
// ======================================================

// List returns employees filtered by status and cedula substring,
// ordered by name.
func (h *EmployeeHandler) List(c *gin.Context) {
	cedula := strings.TrimSpace(c.Query("cedula"))
	status := strings.TrimSpace(c.Query("status"))
	page := pagination.FromQuery(c, pagination.DefaultPageSize)

	q := h.db.Model(&models.Employee{})
	if status == models.EmployeeActive || status == models.EmployeeInactive {
		q = q.Where("status = ?", status)
	}
	if cedula != "" {
		q = q.Where("cedula LIKE ?", "%"+cedula+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Error interno.")
		return
	}

	var employees []models.Employee
	if err := page.Scope(q).
		Order("name ASC, surname ASC").
		Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Error interno.")
		return
	}

	httpresp.Page(c, employees, total, page.Page, page.PageSize)
}

// ======================================================
// CREATE / UPDATE / TOGGLE
// ======================================================

func (h *EmployeeHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req EmployeeRequest
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

func (h *EmployeeHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req EmployeeRequest
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

func (h *EmployeeHandler) ToggleStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	updated, err := h.saveUC.ToggleStatus(c.Request.Context(), userID, id)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, updated)
}
