// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for parabola's commands.
//
// STANDARDIZED PATTERN:
//   - Handlers return errors; main displays them once
//   - Structured error types carry the field or command that failed
//   - GetExitCode maps error categories to process exit codes

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/parabola/internal/config"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
	// ExitInterrupted indicates the run was cancelled by the user
	ExitInterrupted = 130
)

// errInputInterrupted is returned when the user aborts a prompt.
var errInputInterrupted = errors.New("input interrupted")

// =============================================================================
// ERROR TYPES FOR STRUCTURED ERROR HANDLING
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "solve", "config")
	Action  string // Action being performed (e.g., "plot", "set")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "config file", "key")
	ID       string // Identifier that was not found
	// Suggestion is a close match for a mistyped ID, if any.
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s not found: %s (did you mean %s?)", e.Resource, e.ID, e.Suggestion)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NewUnknownKeyError reports an unknown config key, suggesting the closest
// valid one.
func NewUnknownKeyError(key string) error {
	return &NotFoundError{
		Resource:   "config key",
		ID:         key,
		Suggestion: Suggest(key, config.GetAllKeys()),
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// =============================================================================
// ERROR DISPLAY HELPERS
// =============================================================================

// DisplayError writes an error in a consistent format.
//
// In JSON mode, outputs structured JSON error on w.
// In normal mode, writes a styled message.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		DisplayErrorJSON(w, err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", RenderConditional(ErrorStyle, "[ERROR]"), err.Error())
}

// DisplayErrorJSON writes an error as JSON.
func DisplayErrorJSON(w io.Writer, err error) {
	output := map[string]interface{}{
		"error":   err.Error(),
		"success": false,
	}

	var (
		cmdErr      *CommandError
		validErr    *ValidationError
		notFoundErr *NotFoundError
		cfgErrs     config.ValidateErrors
	)
	switch {
	case errors.As(err, &validErr):
		output["error_type"] = "validation_error"
		output["field"] = validErr.Field
		output["value"] = validErr.Value
		output["reason"] = validErr.Reason
		if validErr.Example != "" {
			output["example"] = validErr.Example
		}
	case errors.As(err, &notFoundErr):
		output["error_type"] = "not_found_error"
		output["resource"] = notFoundErr.Resource
		output["id"] = notFoundErr.ID
	case errors.As(err, &cfgErrs):
		output["error_type"] = "config_error"
		fields := make([]string, 0, len(cfgErrs))
		for _, e := range cfgErrs {
			fields = append(fields, e.Field)
		}
		output["fields"] = fields
	case errors.As(err, &cmdErr):
		output["error_type"] = "command_error"
		output["command"] = cmdErr.Command
		output["action"] = cmdErr.Action
		output["reason"] = cmdErr.Reason
		if cmdErr.Err != nil {
			output["underlying_error"] = cmdErr.Err.Error()
		}
	default:
		output["error_type"] = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output)
}

// =============================================================================
// EXIT CODES
// =============================================================================

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, errInputInterrupted) {
		return ExitInterrupted
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return ExitNotFoundError
	}

	var cfgErrs config.ValidateErrors
	if errors.As(err, &cfgErrs) {
		return ExitConfigError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "config") ||
		strings.Contains(errMsg, "configuration") {
		return ExitConfigError
	}

	return ExitGeneralError
}
