package agoralink

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	// Protocol errors (from server error frames)
	ErrorUnknown ErrorCode = iota
	ErrorUnauthorized
	ErrorBadRequest
	ErrorRoomNotFound
	ErrorRateLimited
	ErrorInternalServer

	// Client-side errors
	ErrorConnection
	ErrorNotConnected
	ErrorTimeout
	ErrorTransport
	ErrorHistoryFetch
	ErrorSend
	ErrorMalformedEvent
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorUnauthorized:
		return "unauthorized"
	case ErrorBadRequest:
		return "bad_request"
	case ErrorRoomNotFound:
		return "room_not_found"
	case ErrorRateLimited:
		return "rate_limited"
	case ErrorInternalServer:
		return "internal_error"
	case ErrorConnection:
		return "connection_error"
	case ErrorNotConnected:
		return "not_connected"
	case ErrorTimeout:
		return "timeout"
	case ErrorTransport:
		return "transport_unavailable"
	case ErrorHistoryFetch:
		return "history_fetch_failed"
	case ErrorSend:
		return "send_failed"
	case ErrorMalformedEvent:
		return "malformed_event"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// ParseErrorCode converts a protocol error code string to ErrorCode.
func ParseErrorCode(code string) ErrorCode {
	switch code {
	case "unauthorized":
		return ErrorUnauthorized
	case "bad_request":
		return ErrorBadRequest
	case "room_not_found":
		return ErrorRoomNotFound
	case "rate_limited":
		return ErrorRateLimited
	case "internal_error":
		return ErrorInternalServer
	default:
		return ErrorUnknown
	}
}

// AgoraError is a structured error with code and context.
type AgoraError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *AgoraError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *AgoraError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is comparison by code.
func (e *AgoraError) Is(target error) bool {
	t, ok := target.(*AgoraError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new AgoraError with the given code and message.
func NewError(code ErrorCode, message string) *AgoraError {
	return &AgoraError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with an AgoraError.
func WrapError(code ErrorCode, message string, err error) *AgoraError {
	return &AgoraError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// FromProtocolError converts a protocol Error to AgoraError.
func FromProtocolError(e *Error) *AgoraError {
	if e == nil {
		return nil
	}
	return &AgoraError{
		Code:    ParseErrorCode(e.Code),
		Message: e.Msg,
	}
}

// IsProtocolError checks if an error originated from a server error frame.
func IsProtocolError(err error) bool {
	if err == nil {
		return false
	}
	var ae *AgoraError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code >= ErrorUnauthorized && ae.Code <= ErrorInternalServer
}

// IsConnectionError checks if an error is connection-related.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var ae *AgoraError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == ErrorConnection || ae.Code == ErrorNotConnected || ae.Code == ErrorTimeout || ae.Code == ErrorTransport
}
