// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes gateway failures for handling.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNetwork covers connectivity failures, timeouts and unreadable bodies.
	KindNetwork
	// KindHTTPStatus is any non-2xx response.
	KindHTTPStatus
	// KindEncode means the request payload could not be built.
	KindEncode
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// Error represents a failed gateway call.
// The message is meant for logs; screens show their own generic text.
type Error struct {
	Kind       ErrorKind
	Endpoint   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Endpoint != "" {
		msg = e.Endpoint + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newStatusError(endpoint string, code int, status string) *Error {
	return &Error{
		Kind:       KindHTTPStatus,
		Endpoint:   endpoint,
		StatusCode: code,
		Message:    fmt.Sprintf("request failed with status %s", status),
	}
}

// IsNetwork reports whether err is a gateway network failure.
func IsNetwork(err error) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.Kind == KindNetwork
}

// StatusCode returns the HTTP status of a KindHTTPStatus error.
func StatusCode(err error) (int, bool) {
	var gerr *Error
	if errors.As(err, &gerr) && gerr.Kind == KindHTTPStatus {
		return gerr.StatusCode, true
	}
	return 0, false
}
