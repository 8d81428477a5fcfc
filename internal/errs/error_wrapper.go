// Package errs defines the error categories shared by the extraction pipeline.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType defines the category of an error
type ErrorType string

// Error types
const (
	ParseError        ErrorType = "parse"
	SegmentationError ErrorType = "segmentation"
	SequenceError     ErrorType = "sequence"
	ValidationError   ErrorType = "validation"
	TimeoutError      ErrorType = "timeout"
)

// Common errors that can be used throughout the module
var (
	ErrUnbalancedTag  = errors.New("unbalanced tag")
	ErrOutOfSequence  = errors.New("chunk field computed out of sequence")
	ErrDocumentLarge  = errors.New("document too large")
	ErrInvalidOptions = errors.New("invalid options")
	ErrTimeout        = errors.New("operation timed out")
)

// WrapError wraps an error with context information
func WrapError(err error, errorType ErrorType, funcName, message string) error {
	if err == nil {
		return nil
	}

	if message == "" {
		return fmt.Errorf("[%s:%s] %w", errorType, funcName, err)
	}

	return fmt.Errorf("[%s:%s] %s: %w", errorType, funcName, message, err)
}

// WrapParseError wraps a tokenizer or reader failure
func WrapParseError(err error, funcName, message string) error {
	return WrapError(err, ParseError, funcName, message)
}

// WrapSegmentationError wraps a malformed-input fault raised while segmenting
func WrapSegmentationError(err error, funcName, message string) error {
	return WrapError(err, SegmentationError, funcName, message)
}

// WrapSequenceError wraps a chunk pipeline ordering fault
func WrapSequenceError(err error, funcName, message string) error {
	return WrapError(err, SequenceError, funcName, message)
}

// WrapValidationError wraps a validation error
func WrapValidationError(err error, funcName, message string) error {
	return WrapError(err, ValidationError, funcName, message)
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), fmt.Sprintf("[%s:", errorType))
}

// IsParseError returns true if the error is a parse error
func IsParseError(err error) bool {
	return IsErrorType(err, ParseError)
}

// IsSegmentationError returns true if the error is a segmentation error
func IsSegmentationError(err error) bool {
	return IsErrorType(err, SegmentationError)
}

// IsSequenceError returns true if the error is a sequence error
func IsSequenceError(err error) bool {
	return IsErrorType(err, SequenceError)
}

// IsValidationError returns true if the error is a validation error
func IsValidationError(err error) bool {
	return IsErrorType(err, ValidationError)
}
