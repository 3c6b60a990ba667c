package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsCollect(t *testing.T) {
	errs := New()
	assert.True(t, errs.Empty())

	errs.Add("name", CodeRequired)
	errs.Add("phone", CodeInvalidFormat)

	assert.False(t, errs.Empty())
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("phone"))
	assert.False(t, errs.Has("surname"))
	assert.Equal(t, CodeRequired, errs["name"])
}

func TestErrorsFirstCodePerFieldWins(t *testing.T) {
	errs := New()
	errs.Add("order_code", CodeInvalidFormat)
	// a later store check must not overwrite the structural failure
	errs.Add("order_code", CodeDuplicateKey)

	assert.Equal(t, CodeInvalidFormat, errs["order_code"])
}
