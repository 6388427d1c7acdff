package pagination

import (
	"errors"

	"github.com/Domenick1991/flightdesk/internal/apperr"
)

var ErrInvalid = errors.New(apperr.MsgInvalidPagination)

// Request is a validated page request. PageSize is already clamped.
type Request struct {
	Page     int
	PageSize int
}

// Offset is the number of rows skipped before the page starts.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Validate rejects non-positive page or page size and clamps page size to
// maxPageSize. Callers must use the returned size, never the requested one.
func Validate(page, pageSize, maxPageSize int) (Request, error) {
	if page < 1 || pageSize < 1 {
		return Request{}, ErrInvalid
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Request{Page: page, PageSize: pageSize}, nil
}
