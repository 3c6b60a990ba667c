package validation

// Field validation failures are collected per field and returned as one map
// so the caller can render every violation at once. Codes mirror the
// business-error codes used across the API.

const (
	// FormField carries errors that belong to the record as a whole
	// rather than to a single field.
	FormField = "_form"

	CodeRequired          = "required"
	CodeOutOfRange        = "out_of_range"
	CodeInvalidFormat     = "invalid_format"
	CodeDuplicateKey      = "duplicate_key"
	CodeInvalidDate       = "invalid_date"
	CodeInsufficientStock = "insufficient_stock"
	CodeNotFound          = "not_found"
)

type Errors map[string]string

func New() Errors {
	return Errors{}
}

// Add records a code for a field. The first failure per field wins, which
// keeps structural errors from being overwritten by later store checks.
func (e Errors) Add(field, code string) {
	if _, exists := e[field]; !exists {
		e[field] = code
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Empty() bool {
	return len(e) == 0
}
