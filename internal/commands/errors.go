package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Site write commands fail in three ways callers must tell apart: the
// message was invalid, the request context ended first, or the backing
// service rejected the write. Each class carries a stable text code for API
// clients and log queries.
const (
	CodeMessageInvalid = "SITE_COMMAND_MESSAGE_INVALID"
	CodeCancelled      = "SITE_COMMAND_CANCELLED"
	CodeTimedOut       = "SITE_COMMAND_TIMED_OUT"
	CodeWriteRejected  = "SITE_COMMAND_WRITE_REJECTED"
)

func messageInvalid(operation string, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, describe(operation, "message rejected")).
		WithTextCode(CodeMessageInvalid)
}

func contextEnded(operation string, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	code, what := CodeCancelled, "cancelled before completion"
	if errors.Is(err, context.DeadlineExceeded) {
		code, what = CodeTimedOut, "deadline exceeded"
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, describe(operation, what)).
		WithTextCode(code)
}

func writeRejected(operation string, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, describe(operation, "write rejected")).
		WithTextCode(CodeWriteRejected)
}

func describe(operation, what string) string {
	if operation == "" {
		return "command " + what
	}
	return operation + ": " + what
}
