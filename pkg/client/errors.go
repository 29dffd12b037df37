package client

import (
	"fmt"
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents non-JSON or undecodable response bodies.
	ErrorClassDecode ErrorClass = "decode"
)

// RequestError represents a failed page request with additional context.
type RequestError struct {
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s error (status %d): %s: %v",
			e.ErrorClass, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("request %s error (status %d): %s",
		e.ErrorClass, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// classifyStatus categorizes an HTTP status code for observability.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}
