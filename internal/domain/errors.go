package domain

import (
	"errors"
	"fmt"
)

var (
	ErrResponseNotObject = errors.New("invalid data type: API response must be an object")
	ErrMissingHomeworks  = errors.New(`response is missing the "homeworks" key`)
	ErrHomeworksNotList  = errors.New(`invalid data type: "homeworks" must be a list`)
	ErrRecordNotObject   = errors.New("invalid data type: homework record must be an object")
	ErrUnknownStatus     = errors.New("unexpected homework status")
	ErrMissingName       = errors.New(`missing "homework_name" key`)
	ErrDeliveryFailed    = errors.New("failed to send message to Telegram")
)

// ErrorKind is the closed set of recoverable failures a poll cycle can produce.
type ErrorKind int

const (
	KindRequestFailure ErrorKind = iota + 1
	KindServerUnavailable
	KindMalformedResponse
	KindUnknownStatus
	KindMissingName
	KindDeliveryFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindRequestFailure:
		return "request_failure"
	case KindServerUnavailable:
		return "server_unavailable"
	case KindMalformedResponse:
		return "malformed_response"
	case KindUnknownStatus:
		return "unknown_status"
	case KindMissingName:
		return "missing_name"
	case KindDeliveryFailure:
		return "delivery_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Error struct {
	Kind ErrorKind
	// StatusCode is set for KindServerUnavailable only.
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func RequestFailure(cause error) *Error {
	return &Error{Kind: KindRequestFailure, Message: "request error", Err: cause}
}

func ServerUnavailable(code int) *Error {
	return &Error{
		Kind:       KindServerUnavailable,
		StatusCode: code,
		Message:    fmt.Sprintf("server unavailable, response code %d", code),
	}
}

func MalformedResponse(cause error) *Error {
	return &Error{Kind: KindMalformedResponse, Err: cause}
}

func UnknownStatus(status any) *Error {
	return &Error{Kind: KindUnknownStatus, Err: fmt.Errorf("%w %v", ErrUnknownStatus, quoteValue(status))}
}

func MissingName() *Error {
	return &Error{Kind: KindMissingName, Err: ErrMissingName}
}

func DeliveryFailure(cause error) *Error {
	return &Error{Kind: KindDeliveryFailure, Err: fmt.Errorf("%w: %w", ErrDeliveryFailed, cause)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return 0, false
	}

	return domainErr.Kind, true
}

func quoteValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "<missing>"
	case string:
		return fmt.Sprintf("%q", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
