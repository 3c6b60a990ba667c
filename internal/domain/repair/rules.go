package repair

import (
	"time"
	"unicode/utf8"

	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

const (
	DescriptionMin = 10
	DescriptionMax = 500
	OrderCodeMax   = 10
	BrandMax       = 30
	LocationMax    = 50
	PriceMax       = 1_000_000
	DateFormat     = "2006-01-02"
)

// Input is the raw form data for creating or editing a repair order.
type Input struct {
	ClientID          uint
	TechnicianID      uint
	WatchBrand        string
	Description       string
	OrderCode         string
	EstimatedDelivery string
	Price             int64
	Location          string
	Status            string
}

// ValidateFields runs the structural checks and collects every violation.
// Store-dependent checks (client/technician existence, code uniqueness) run
// afterwards, in the use case, and only against structurally valid input.
func ValidateFields(in Input, today time.Time) (time.Time, validation.Errors) {
	errs := validation.New()

	if in.ClientID == 0 {
		errs.Add("client_id", validation.CodeRequired)
	}
	if in.TechnicianID == 0 {
		errs.Add("technician_id", validation.CodeRequired)
	}

	if in.WatchBrand == "" {
		errs.Add("watch_brand", validation.CodeRequired)
	} else if utf8.RuneCountInString(in.WatchBrand) > BrandMax {
		errs.Add("watch_brand", validation.CodeOutOfRange)
	}

	if in.Description == "" {
		errs.Add("description", validation.CodeRequired)
	} else if n := utf8.RuneCountInString(in.Description); n < DescriptionMin || n > DescriptionMax {
		errs.Add("description", validation.CodeOutOfRange)
	}

	if in.OrderCode == "" {
		errs.Add("order_code", validation.CodeRequired)
	} else if !validation.IsDigits(in.OrderCode) || len(in.OrderCode) > OrderCodeMax {
		errs.Add("order_code", validation.CodeInvalidFormat)
	}

	var delivery time.Time
	if in.EstimatedDelivery == "" {
		errs.Add("estimated_delivery", validation.CodeRequired)
	} else {
		parsed, err := time.ParseInLocation(DateFormat, in.EstimatedDelivery, today.Location())
		switch {
		case err != nil:
			errs.Add("estimated_delivery", validation.CodeInvalidFormat)
		case parsed.Before(today):
			errs.Add("estimated_delivery", validation.CodeInvalidDate)
		default:
			delivery = parsed
		}
	}

	if in.Price <= 0 || in.Price > PriceMax {
		errs.Add("price", validation.CodeOutOfRange)
	}

	if in.Location == "" {
		errs.Add("location", validation.CodeRequired)
	} else if utf8.RuneCountInString(in.Location) > LocationMax {
		errs.Add("location", validation.CodeOutOfRange)
	}

	if in.Status != "" && !Status(in.Status).Valid() {
		errs.Add("status", validation.CodeInvalidFormat)
	}

	return delivery, errs
}
