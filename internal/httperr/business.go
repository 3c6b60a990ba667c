package httperr

import (
	"errors"

	"github.com/RelojeriaCentral/taller-api/internal/validation"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError carries a full set of per-field failures out of a use case.
type ValidationError struct {
	Fields validation.Errors
}

func (e ValidationError) Error() string {
	return "validation_failed"
}

func ErrValidation(fields validation.Errors) error {
	return ValidationError{Fields: fields}
}

func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
