package library

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by store operations. Callers compare with errors.Is.
var (
	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("validation failed")

	ErrEmptyTitle   = fmt.Errorf("%w: title is required", ErrValidation)
	ErrEmptyAuthor  = fmt.Errorf("%w: author is required", ErrValidation)
	ErrEmptyContent = fmt.Errorf("%w: quote content is required", ErrValidation)
	ErrNegativePage = fmt.Errorf("%w: page must not be negative", ErrValidation)

	// ErrUnknownBook is returned when a quote references a book the store does not hold.
	ErrUnknownBook = errors.New("quote references unknown book")

	ErrBookNotFound  = errors.New("book not found")
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrPersistence is only surfaced when Config.StrictPersistence is set.
	ErrPersistence = errors.New("failed to persist library")

	ErrInvalidTagPattern = errors.New("invalid tag pattern")
	ErrNoQuotes          = errors.New("library has no quotes")
)
