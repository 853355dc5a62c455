package optimizer

import (
	"errors"
	"fmt"

	"github.com/jonathan/shorts-optimizer/internal/schemas"
	"google.golang.org/api/googleapi"
)

// Kind classifies an optimization failure
type Kind string

// Failure kinds. Every kind is terminal for the attempt.
const (
	KindNone              Kind = ""
	KindEmptyResponse     Kind = "empty_response"
	KindMalformedResponse Kind = "malformed_response"
	KindTransport         Kind = "transport_error"
	KindValidation        Kind = "validation_error"
)

// EmptyResponseError means the service returned no payload at all
type EmptyResponseError struct {
	Cause error
}

func (e *EmptyResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("empty response: %v", e.Cause)
	}
	return "empty response"
}

func (e *EmptyResponseError) Unwrap() error { return e.Cause }

// Kind implements kinded
func (e *EmptyResponseError) Kind() Kind { return KindEmptyResponse }

// MalformedResponseError means a payload arrived but does not match the result schema
type MalformedResponseError struct {
	Message string
	Fields  []schemas.FieldError
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// Kind implements kinded
func (e *MalformedResponseError) Kind() Kind { return KindMalformedResponse }

// TransportError means the call itself failed
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Kind implements kinded
func (e *TransportError) Kind() Kind { return KindTransport }

// ValidationError is raised locally, before any call, for unusable input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Kind implements kinded
func (e *ValidationError) Kind() Kind { return KindValidation }

// StatusCode returns the HTTP status reported by the service for err, or 0.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

type kinded interface {
	Kind() Kind
}

// KindOf returns the failure kind carried by err, or KindNone.
// Errors that carry no kind are reported as transport failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindTransport
}

// UserMessage converts err into the single message shown to the user.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindEmptyResponse:
		return "No response from AI"
	case KindMalformedResponse:
		return "The AI returned a response in an unexpected format"
	case KindValidation:
		var ve *ValidationError
		if errors.As(err, &ve) {
			return ve.Message
		}
		return err.Error()
	default:
		var te *TransportError
		if errors.As(err, &te) && te.Cause != nil {
			return fmt.Sprintf("Failed to reach the AI service: %v", te.Cause)
		}
		return fmt.Sprintf("Failed to reach the AI service: %v", err)
	}
}
