package watch

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

// ===============================
// Watch Status
// ===============================

const (
	StatusAvailable = "Disponible"
	StatusSold      = "Vendido"

	ConditionNew         = "Nuevo"
	ConditionUsed        = "Usado"
	ConditionRefurbished = "Seminuevo"
)

const (
	BrandMax       = 30
	ReferenceMax   = 30
	OwnerMax       = 50
	DescriptionMax = 150
	PriceDigitsMax = 12
)

func ValidCondition(c string) bool {
	return c == ConditionNew || c == ConditionUsed || c == ConditionRefurbished
}

// Commission is always derived from the price: 20%, floor.
func Commission(price int64) int64 {
	return price * 20 / 100
}

// ===============================
// Transitions
// ===============================

// Sell is the only transition: Disponible → Vendido. Sale date and client
// are required exactly here, at the point of state change, instead of as
// presence checks scattered through form validation. There is no way back
// to Disponible.
func Sell(w *models.Watch, clientID *uint, saleDate *time.Time) error {
	if w.Status != StatusAvailable {
		return httperr.ErrBusiness("invalid_state")
	}

	errs := validation.New()
	if clientID == nil || *clientID == 0 {
		errs.Add("client_id", validation.CodeRequired)
	}
	if saleDate == nil {
		errs.Add("sale_date", validation.CodeRequired)
	}
	if !errs.Empty() {
		return httperr.ErrValidation(errs)
	}

	w.Status = StatusSold
	w.ClientID = clientID
	w.SaleDate = saleDate
	return nil
}

// ===============================
// Field rules
// ===============================

type Input struct {
	Brand       string
	Reference   string
	Price       int64
	Owner       string
	Description string
	Condition   string
	Paid        bool
}

func ValidateFields(in Input) validation.Errors {
	errs := validation.New()

	if in.Brand == "" {
		errs.Add("brand", validation.CodeRequired)
	} else if utf8.RuneCountInString(in.Brand) > BrandMax {
		errs.Add("brand", validation.CodeOutOfRange)
	}

	if in.Reference == "" {
		errs.Add("reference", validation.CodeRequired)
	} else if utf8.RuneCountInString(in.Reference) > ReferenceMax {
		errs.Add("reference", validation.CodeOutOfRange)
	}

	if in.Price <= 0 || len(strconv.FormatInt(in.Price, 10)) > PriceDigitsMax {
		errs.Add("price", validation.CodeOutOfRange)
	}

	if in.Owner == "" {
		errs.Add("owner", validation.CodeRequired)
	} else if utf8.RuneCountInString(in.Owner) > OwnerMax {
		errs.Add("owner", validation.CodeOutOfRange)
	}

	if utf8.RuneCountInString(in.Description) > DescriptionMax {
		errs.Add("description", validation.CodeOutOfRange)
	}

	if !ValidCondition(in.Condition) {
		errs.Add("condition", validation.CodeInvalidFormat)
	}

	return errs
}
