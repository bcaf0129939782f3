// Package main provides the entry point for the gsheet-mcp CLI.
package main

import (
	"errors"
	"strings"

	"github.com/quillpad/gsheet-mcp/internal/auth"
	"github.com/quillpad/gsheet-mcp/internal/credentials"
	"github.com/quillpad/gsheet-mcp/internal/drive"
	"github.com/quillpad/gsheet-mcp/internal/output"
)

// classifyError maps service-layer failures onto the CLI's exit-code
// taxonomy so scripts can branch on the exit status.
func classifyError(err error) error {
	exitErr := &output.ExitError{}
	if errors.As(err, &exitErr) {
		return err
	}

	if errors.Is(err, auth.ErrAuthRequired) {
		return output.NewAuthErrorWithCause(err.Error()+"; run 'gsheet-mcp auth login'", err)
	}
	notFound := &credentials.NotFoundError{}
	if errors.As(err, &notFound) {
		return output.NewAuthErrorWithCause(err.Error(), err)
	}
	invalid := &credentials.InvalidProfileError{}
	if errors.As(err, &invalid) {
		return output.NewUserError(err.Error())
	}
	if errors.Is(err, drive.ErrDenied) || strings.Contains(err.Error(), "access denied") {
		return output.NewUserError(err.Error())
	}
	return output.NewSystemErrorWithCause(err.Error(), err)
}

// fail prints a classified error and returns it for the exit code.
func fail(printer *output.Printer, err error) error {
	wrapped := classifyError(err)
	printer.Error(wrapped)
	return wrapped
}
