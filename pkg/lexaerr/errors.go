// Package lexaerr defines the error taxonomy of the SDK. Errors raised before
// any network interaction (bad skill parameters, unsupported payloads) are kept
// distinct from transport failures and from malformed service responses, so
// callers can tell a local mistake from a service-side defect.
package lexaerr

import "fmt"

// ConfigError reports invalid pipeline or skill configuration. It is always
// raised at build time and never reaches the transport.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Message
}

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...any) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedInputError reports an input payload the SDK does not recognize,
// such as a file with an unsupported extension. Raised before any request is
// sent.
type UnsupportedInputError struct {
	Detail string
}

func (e *UnsupportedInputError) Error() string {
	return "unsupported input: " + e.Detail
}

// UnsupportedInputf builds an UnsupportedInputError from a format string.
func UnsupportedInputf(format string, args ...any) error {
	return &UnsupportedInputError{Detail: fmt.Sprintf(format, args...)}
}

// TransportKind classifies a TransportError by its cause.
type TransportKind int

const (
	// KindUnknown covers network failures and unclassified statuses.
	KindUnknown TransportKind = iota
	// KindInput means the service rejected the request payload.
	KindInput
	// KindAPIKey means the API key is missing, invalid, expired or out of quota.
	KindAPIKey
	// KindServer means the service failed internally.
	KindServer
)

// TransportError is an opaque failure surfaced by the transport collaborator.
// The SDK never retries it internally beyond the transport's own policy and
// never rewrites it; it reaches the caller unchanged.
type TransportError struct {
	Kind       TransportKind
	StatusCode int
	Code       int
	Message    string
	Details    string
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("transport error (status %d): %s", e.StatusCode, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

// MissingAPIKey is the TransportError returned when no API key is configured.
func MissingAPIKey() error {
	return &TransportError{
		Kind:    KindAPIKey,
		Code:    60001,
		Message: "missing API key",
		Details: "provide an API key via the transport options or the LEXA_API_KEY environment variable",
	}
}

// FromStatus maps an unsuccessful HTTP status to a TransportError, mirroring
// the service's documented status contract.
func FromStatus(status int, message string) error {
	err := &TransportError{StatusCode: status, Message: message}
	switch {
	case status == 400:
		err.Kind = KindInput
	case status == 401 || status == 403:
		err.Kind = KindAPIKey
	case status >= 500:
		err.Kind = KindServer
	}
	return err
}

// MalformedResponseError reports a service response that violates the
// documented shape: a dangling parent reference, a missing root block, or an
// out-of-bounds label span. Such responses are never silently repaired, since
// repairing would hide service-side bugs from the caller.
type MalformedResponseError struct {
	Message string
}

func (e *MalformedResponseError) Error() string {
	return "malformed response: " + e.Message
}

// MalformedResponsef builds a MalformedResponseError from a format string.
func MalformedResponsef(format string, args ...any) error {
	return &MalformedResponseError{Message: fmt.Sprintf(format, args...)}
}

// LabelNotFoundError is raised by output accessors when a skill never ran on
// the queried branch. A skill that ran but found nothing yields an empty label
// list instead; the two cases are deliberately distinguishable.
type LabelNotFoundError struct {
	Skill string
}

func (e *LabelNotFoundError) Error() string {
	return fmt.Sprintf("skill %q did not run on this output branch", e.Skill)
}
