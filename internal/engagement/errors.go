package engagement

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyLiked         = errors.New("engagement: already liked")
	ErrActionInvalid        = errors.New("engagement: action must be like or unlike")
	ErrDatastoreUnavailable = errors.New("engagement: datastore not configured")
	ErrPostIDRequired       = errors.New("engagement: post id is required")
	ErrNotFound             = errors.New("engagement: record not found")
)

// NotFoundError reports a missing stored record. It unwraps to ErrNotFound.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key != "" {
		return fmt.Sprintf("%s: %s=%s", ErrNotFound.Error(), e.Resource, key)
	}
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
