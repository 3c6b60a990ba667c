package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/RelojeriaCentral/taller-api/internal/domain/watch"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/httpresp"
	"github.com/RelojeriaCentral/taller-api/internal/infra/storage"
	"github.com/RelojeriaCentral/taller-api/internal/middleware"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/pagination"
	"github.com/RelojeriaCentral/taller-api/internal/photo"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/sale"
	ucWatch "github.com/RelojeriaCentral/taller-api/internal/usecase/watch"
)

const maxPhotoBytes = 10 << 20

type WatchHandler struct {
	db     *gorm.DB
	saveUC *ucWatch.SaveWatch
	sellUC *sale.SellWatch
	store  *storage.ObjectStore
}

func NewWatchHandler(
	db *gorm.DB,
	saveUC *ucWatch.SaveWatch,
	sellUC *sale.SellWatch,
	store *storage.ObjectStore,
) *WatchHandler {
	return &WatchHandler{
		db:     db,
		saveUC: saveUC,
		sellUC: sellUC,
		store:  store,
	}
}

// --------- Requests ---------

type WatchRequest struct {
	Brand       string `json:"brand"`
	Reference   string `json:"reference"`
	Price       int64  `json:"price"`
	Owner       string `json:"owner"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Paid        bool   `json:"paid"`
}

func (r WatchRequest) toInput() domain.Input {
	return domain.Input{
		Brand:       strings.TrimSpace(r.Brand),
		Reference:   strings.TrimSpace(r.Reference),
		Price:       r.Price,
		Owner:       strings.TrimSpace(r.Owner),
		Description: strings.TrimSpace(r.Description),
		Condition:   r.Condition,
		Paid:        r.Paid,
	}
}

type SellWatchRequest struct {
	ClientID uint   `json:"client_id"`
	SaleDate string `json:"sale_date"`
	Paid     bool   `json:"paid"`
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *WatchHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	status := strings.TrimSpace(c.Query("status"))
	page := pagination.FromQuery(c, pagination.DefaultPageSize)

	q := h.db.Model(&models.Watch{})
	if status == domain.StatusAvailable || status == domain.StatusSold {
		q = q.Where("status = ?", status)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(brand) LIKE ? OR LOWER(reference) LIKE ? OR LOWER(owner) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_watches", "Error interno.")
		return
	}

	var watches []models.Watch
	if err := page.Scope(q).
		Preload("Client").
		Order("brand ASC, reference ASC").
		Find(&watches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_watches", "Error interno.")
		return
	}

	httpresp.Page(c, watches, total, page.Page, page.PageSize)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *WatchHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req WatchRequest
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

func (h *WatchHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req WatchRequest
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

// ======================================================
// SELL
// ======================================================

func (h *WatchHandler) Sell(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req SellWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sold, err := h.sellUC.Execute(c.Request.Context(), userID, sale.SellWatchInput{
		WatchID:  id,
		ClientID: req.ClientID,
		SaleDate: req.SaleDate,
		Paid:     req.Paid,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, sold)
}

// ======================================================
// PHOTO
// ======================================================

// UploadPhoto accepts a multipart "photo" field, recodes it to webp and
// stores it under watches/<id>.webp.
func (h *WatchHandler) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if !h.store.Enabled() {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled",
			"El almacenamiento de fotos no está configurado.")
		return
	}

	var w models.Watch
	if err := h.db.WithContext(c.Request.Context()).First(&w, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "watch_not_found", "Reloj no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_upload_photo", "Error interno.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Se requiere el archivo 'photo'.")
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "La foto supera el tamaño máximo.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Error interno.")
		return
	}
	defer f.Close()

	payload, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes))
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Error interno.")
		return
	}

	encoded, err := photo.Process(payload)
	if err != nil {
		httperr.Write(c, http.StatusUnprocessableEntity, "invalid_photo",
			"La imagen no es válida.")
		return
	}

	key := fmt.Sprintf("watches/%d.webp", w.ID)
	url, err := h.store.Upload(c.Request.Context(), key, "image/webp", encoded)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Error interno.")
		return
	}

	w.PhotoURL = url
	if err := h.db.WithContext(c.Request.Context()).
		Model(&w).Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Error interno.")
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}
