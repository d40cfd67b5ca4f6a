package library

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldErrors maps a failing struct field to the sentinel reported for it.
var fieldErrors = map[string]error{
	"Title":   ErrEmptyTitle,
	"Author":  ErrEmptyAuthor,
	"Content": ErrEmptyContent,
	"Page":    ErrNegativePage,
}

type bookFields struct {
	Title  string `validate:"required"`
	Author string `validate:"required"`
}

type quoteFields struct {
	Content string `validate:"required"`
	Page    *int   `validate:"omitempty,min=0"`
}

// validateFields runs struct validation and reports the first failing field
// as one of the package sentinels.
func validateFields(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if sentinel, ok := fieldErrors[fieldErrs[0].StructField()]; ok {
			return sentinel
		}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// normalizeTags trims every tag and drops empty ones. The result is never nil.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
