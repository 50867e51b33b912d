// Package errors provides foundational, type-safe error primitives used across mdsite.
//
// This package contains classified error types and helpers for fail-fast error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (not found, parse, filesystem, template, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLI adapter for error presentation and exit codes
//
// Example usage:
//
//	err := errors.ParseError("invalid date").
//		WithContext("path", sourcePath).
//		WithContext("value", raw).
//		WithCause(originalErr).
//		Build()
package errors
