package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const DefaultPageSize = 10

type Params struct {
	Page     int
	PageSize int
}

// FromQuery reads ?page= with a fixed page size per list view. Out-of-range
// values fall back to the first page.
func FromQuery(c *gin.Context, pageSize int) Params {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return Params{Page: page, PageSize: pageSize}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Scope applies the page slice to a gorm query.
func (p Params) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.PageSize)
}

// Slice applies the page to an in-memory list; used by use cases that
// filter in application code before slicing.
func Slice[T any](items []T, p Params) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
