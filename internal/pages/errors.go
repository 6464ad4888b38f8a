package pages

import "errors"

var (
	ErrEmptyDropdown     = errors.New("dropdown has no items")
	ErrOptionNotFound    = errors.New("dropdown option not found")
	ErrUnknownField      = errors.New("unknown field")
	ErrUnknownSection    = errors.New("unknown section")
	ErrUnknownBulkAction = errors.New("unknown bulk action")
	ErrNotExported       = errors.New("rows missing from export")
)
