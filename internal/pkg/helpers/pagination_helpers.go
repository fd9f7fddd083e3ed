package helpers

import (
	"github.com/yigit/conduct/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based page request. Zero fields take the defaults.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes a page request: number below 1 becomes 1, size falls back to
// DefaultPageSize when unset and is capped at MaxPageSize.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// OffsetLimit converts the page into SQL OFFSET/LIMIT
func (p Page) OffsetLimit() (offset uint64, limit int) {
	return uint64(p.Number-1) * uint64(p.Size), p.Size
}

// Info describes the page against a total row count
func (p Page) Info(totalItems int64) dto.PaginationInfo {
	size := int64(p.Size)
	return dto.PaginationInfo{
		CurrentPage: p.Number,
		TotalPages:  int((totalItems + size - 1) / size),
		PageSize:    p.Size,
		TotalItems:  totalItems,
	}
}
