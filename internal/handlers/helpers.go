package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RelojeriaCentral/taller-api/internal/httperr"
)

// writeUsecaseError maps use-case failures onto HTTP. Collected field
// errors become the validation payload; business codes pick their status
// by convention; anything else is a 500.
func writeUsecaseError(c *gin.Context, err error) {
	if ve, ok := httperr.AsValidation(err); ok {
		httperr.WriteValidation(c, ve.Fields)
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch {
		case strings.HasSuffix(be.Code, "_not_found"):
			httperr.NotFound(c, be.Code, "Registro no encontrado.")
		case be.Code == "insufficient_stock" || be.Code == "duplicate_key":
			httperr.Conflict(c, be.Code, "La operación entra en conflicto con el estado actual.")
		case be.Code == "mail_delivery_failed":
			httperr.Write(c, http.StatusBadGateway, be.Code, "No fue posible enviar el correo.")
		case be.Code == "invalid_state":
			httperr.Conflict(c, be.Code, "Transición de estado no permitida.")
		default:
			httperr.BadRequest(c, be.Code, "Solicitud inválida.")
		}
		return
	}

	zap.S().Errorw("unhandled error", "path", c.FullPath(), "error", err)
	httperr.Internal(c, "internal_error", "Error interno.")
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
