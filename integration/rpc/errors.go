package rpc

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingBaseURL = errors.New("rpc: base url is required")
	ErrInvalidBaseURL = errors.New("rpc: invalid base url")
	ErrEncodeRequest  = errors.New("rpc: failed to encode request")
	ErrDecodeResponse = errors.New("rpc: failed to decode response")
	ErrTransport      = errors.New("rpc: transport failure")
)

// Code is a Connect error code.
type Code string

const (
	CodeOK                 Code = "ok"
	CodeCanceled           Code = "canceled"
	CodeUnknown            Code = "unknown"
	CodeInvalidArgument    Code = "invalid_argument"
	CodeDeadlineExceeded   Code = "deadline_exceeded"
	CodeNotFound           Code = "not_found"
	CodeAlreadyExists      Code = "already_exists"
	CodePermissionDenied   Code = "permission_denied"
	CodeResourceExhausted  Code = "resource_exhausted"
	CodeFailedPrecondition Code = "failed_precondition"
	CodeAborted            Code = "aborted"
	CodeOutOfRange         Code = "out_of_range"
	CodeUnimplemented      Code = "unimplemented"
	CodeInternal           Code = "internal"
	CodeUnavailable        Code = "unavailable"
	CodeDataLoss           Code = "data_loss"
	CodeUnauthenticated    Code = "unauthenticated"
)

// Error is a failed call as reported by the remote service. Message is
// meant for the user.
type Error struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rpc: %s", e.Code)
	}
	return fmt.Sprintf("rpc: %s: %s", e.Code, e.Message)
}

// CodeOf extracts the Connect code of err. nil is CodeOK; errors that did
// not come from the remote service are CodeUnknown, or CodeUnavailable for
// transport failures.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Code
	}
	if errors.Is(err, ErrTransport) {
		return CodeUnavailable
	}
	return CodeUnknown
}

// fallbackMessage is shown when the service did not supply one.
const fallbackMessage = "Something went wrong. Please try again."

// UserMessage returns the text to show the user for a failed call.
func UserMessage(err error) string {
	var rerr *Error
	if errors.As(err, &rerr) && rerr.Message != "" {
		return rerr.Message
	}
	if errors.Is(err, ErrTransport) {
		return "The service is unreachable. Please try again later."
	}
	return fallbackMessage
}

// codeFromHTTPStatus maps statuses of responses without a Connect error body.
func codeFromHTTPStatus(status int) Code {
	switch status {
	case http.StatusBadRequest:
		return CodeInternal
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusForbidden:
		return CodePermissionDenied
	case http.StatusNotFound:
		return CodeUnimplemented
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return CodeUnavailable
	default:
		return CodeUnknown
	}
}
