package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("content: item not found")
	ErrTypeUnknown = errors.New("content: unknown content type")
)

// NotFoundError reports a missing content item with enough context to log
// usefully. It unwraps to ErrNotFound.
type NotFoundError struct {
	Type   Type
	Slug   string
	Locale string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	slug := strings.TrimSpace(e.Slug)
	if slug != "" {
		return fmt.Sprintf("%s: type=%s slug=%s", ErrNotFound.Error(), e.Type, slug)
	}
	return fmt.Sprintf("%s: type=%s", ErrNotFound.Error(), e.Type)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
