package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnknownFormat is returned when a format is not one of the sellable editions.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrFormatUnavailable is returned when a book is not sold in the requested format.
	ErrFormatUnavailable = errors.New("format not available for book")
	// ErrInvalidQuantity is returned when a cart quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrAlreadyExists indicates a uniqueness conflict.
	ErrAlreadyExists = errors.New("already exists")
)
