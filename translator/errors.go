package translator

import "errors"

var (
	// ErrColumnIndex is returned when an order directive references a column that does not exist
	ErrColumnIndex = errors.New("order references an unknown column index")
	// ErrSortDirection is returned for sort directions other than asc and desc
	ErrSortDirection = errors.New("order direction must be either 'asc' or 'desc'")
)
