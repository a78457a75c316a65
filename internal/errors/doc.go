// Package errors defines error types for the inspector client.
//
// This package provides structured error types that wrap the failure scenarios
// of endpoint discovery, socket connection and response correlation. All error
// types support unwrapping and can be checked using errors.Is, errors.As, and
// errors.AsType.
package errors
