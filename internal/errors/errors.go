package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a source and a target document")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrStdinTwice      = errors.New("stdin can only be used for one document")
	ErrUnknownFormat   = errors.New("unknown output format")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeFormat  ErrorType = "format"
	ErrorTypeOutput  ErrorType = "output"
)

// Side names which document an error belongs to
type Side string

const (
	SideSource Side = "source"
	SideTarget Side = "target"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Side    Side
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	prefix := string(e.Type)
	if e.Side != "" {
		prefix = fmt.Sprintf("%s: %s", e.Type, e.Side)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithSide returns a copy of e attributed to one document
func (e *AppError) WithSide(side Side) *AppError {
	c := *e
	c.Side = side
	return &c
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates a new error related to JSON pretty-printing
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// SideOf returns the document an error is attributed to, if any
func SideOf(err error) Side {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Side
	}
	return ""
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if appErr.Side != "" {
			message = fmt.Sprintf("%s document: %s", appErr.Side, appErr.Message)
		}
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", message)
		case ErrorTypeFormat:
			return fmt.Sprintf("JSON formatting error: %s", message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", message)
		default:
			return fmt.Sprintf("Error: %s", message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON document."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a source and a target document."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrStdinTwice) {
		return "Error: Only one of the documents can be read from stdin."
	}
	if errors.Is(err, ErrUnknownFormat) {
		return "Error: Unknown output format. Use text, json or yaml."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
