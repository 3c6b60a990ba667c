package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

func TestCommission(t *testing.T) {
	assert.Equal(t, int64(20000), Commission(100000))
	// floor, never rounded up
	assert.Equal(t, int64(19), Commission(99))
	assert.Equal(t, int64(0), Commission(4))
}

func TestSell(t *testing.T) {
	clientID := uint(7)
	saleDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	w := &models.Watch{Status: StatusAvailable}
	err := Sell(w, &clientID, &saleDate)
	require.NoError(t, err)

	assert.Equal(t, StatusSold, w.Status)
	assert.Equal(t, &clientID, w.ClientID)
	assert.Equal(t, &saleDate, w.SaleDate)
}

func TestSellAlreadySold(t *testing.T) {
	clientID := uint(7)
	saleDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	w := &models.Watch{Status: StatusSold}
	err := Sell(w, &clientID, &saleDate)

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "invalid_state", be.Code)
}

func TestSellRequiresClientAndDate(t *testing.T) {
	w := &models.Watch{Status: StatusAvailable}
	err := Sell(w, nil, nil)

	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, validation.CodeRequired, ve.Fields["client_id"])
	assert.Equal(t, validation.CodeRequired, ve.Fields["sale_date"])

	// the failed transition must not leave partial state behind
	assert.Equal(t, StatusAvailable, w.Status)
}

func TestValidateFields(t *testing.T) {
	in := Input{
		Brand:     "Casio",
		Reference: "MTP-1374",
		Price:     180000,
		Owner:     "Tienda",
		Condition: ConditionNew,
	}
	assert.True(t, ValidateFields(in).Empty())

	in.Condition = "Roto"
	errs := ValidateFields(in)
	assert.Equal(t, validation.CodeInvalidFormat, errs["condition"])

	in = Input{}
	errs = ValidateFields(in)
	assert.Equal(t, validation.CodeRequired, errs["brand"])
	assert.Equal(t, validation.CodeRequired, errs["reference"])
	assert.Equal(t, validation.CodeRequired, errs["owner"])
	assert.Equal(t, validation.CodeOutOfRange, errs["price"])
}
