package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RelojeriaCentral/taller-api/internal/infra/storage"
	"github.com/RelojeriaCentral/taller-api/internal/report"
	"github.com/RelojeriaCentral/taller-api/internal/usecase/ledger"
)

type ReportHandler struct {
	ledger *ledger.Ledger
	store  *storage.ObjectStore
}

func NewReportHandler(ledger *ledger.Ledger, store *storage.ObjectStore) *ReportHandler {
	return &ReportHandler{ledger: ledger, store: store}
}

// ======================================================
// INCOME PDF
// ======================================================

// Income renders the income report for ?start&end as a PDF. When object
// storage is configured the document is also archived there; an archive
// failure only logs, the caller still gets the PDF.
func (h *ReportHandler) Income(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	data, err := h.ledger.IncomeRange(c.Request.Context(), start, end)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	pdf, err := report.IncomePDF(data.Incomes, data.Start, data.End, data.Total)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	if h.store.Enabled() {
		key := fmt.Sprintf("reports/income_%s_%s.pdf", start, end)
		if _, err := h.store.Upload(c.Request.Context(), key, "application/pdf", pdf); err != nil {
			zap.S().Warnw("income report archive failed", "key", key, "error", err)
		}
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=ingresos_%s_%s.pdf", start, end))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
