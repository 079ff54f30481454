package apierror

import "net/http"

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindForwarding    Kind = "forwarding"
	KindRequest       Kind = "request"
)

const (
	configurationMessage = "META_PIXEL_ID/META_CAPI_TOKEN not configured"
	forwardingMessage    = "failed to send event to Meta"
)

var (
	ErrConfiguration = Error{Kind: KindConfiguration}
	ErrForwarding    = Error{Kind: KindForwarding}
)

type HTTPPart struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error carries the message that is safe to show the caller. The cause is
// only for server-side logs.
type Error struct {
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	HTTP    HTTPPart `json:"http"`
	cause   error
}

func (e Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e Error) Unwrap() error {
	return e.cause
}

// Is matches on Kind so callers can test against ErrConfiguration and
// ErrForwarding.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Kind == e.Kind
}

func (e Error) StatusCode() int {
	return e.HTTP.Code
}

func NewAPIError(msg string, status int) Error {
	return Error{
		Kind:    KindRequest,
		Message: msg,
		HTTP: HTTPPart{
			Code:    status,
			Message: http.StatusText(status),
		},
	}
}

// NewConfigurationError reports missing deployment configuration. It recurs
// on every request until an operator fixes the environment.
func NewConfigurationError() Error {
	err := NewAPIError(configurationMessage, http.StatusInternalServerError)
	err.Kind = KindConfiguration
	return err
}

func NewForwardingError(cause error) Error {
	err := NewAPIError(forwardingMessage, http.StatusInternalServerError)
	err.Kind = KindForwarding
	err.cause = cause
	return err
}
