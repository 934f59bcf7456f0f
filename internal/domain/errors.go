package domain

import (
	"errors"
	"fmt"
)

// Input and credential errors. These are always reported before any network call.
var (
	// ErrURLParse is returned when the permalink is not a parseable absolute URL.
	ErrURLParse = errors.New("could not parse slack url")

	// ErrChannelIDNotFound is returned when no path segment starts with 'C', 'D' or 'G'.
	ErrChannelIDNotFound = errors.New("no channel id found in slack url")

	// ErrTimestampNotFound is returned when no path segment looks like p<digits>.
	ErrTimestampNotFound = errors.New("no message timestamp found in slack url")

	// ErrTimestampMalformed is returned when the p<digits> segment is not a 16 digit timestamp.
	ErrTimestampMalformed = errors.New("malformed message timestamp in slack url")

	// ErrInvalidAPIToken is returned when the api token does not start with "xoxc".
	ErrInvalidAPIToken = errors.New("invalid slack api token")

	// ErrInvalidCookie is returned when the session cookie does not start with "xoxd".
	ErrInvalidCookie = errors.New("invalid slack api cookie")
)

// Remote errors.
var (
	// ErrTransport is matched by every *TransportError.
	ErrTransport = errors.New("slack transport failed")

	// ErrResponseNotOk is matched by every *ResponseNotOkError.
	ErrResponseNotOk = errors.New("slack response was not ok")

	// ErrMalformedResponse is returned when a response body is not a valid envelope
	// or lacks the entity it should carry.
	ErrMalformedResponse = errors.New("malformed slack response")

	// ErrInvalidMessageResponse is returned when the thread replies request is rejected.
	ErrInvalidMessageResponse = errors.New("the message response was not ok")
)

// Consistency errors. They point at a data-integrity or logic defect and are never retried.
var (
	// ErrMessageNotFoundInThread is returned when the permalinked ts is absent from its thread.
	ErrMessageNotFoundInThread = errors.New("permalinked message not found in thread")

	// ErrUserIDMissing is returned when a message has no sender id.
	ErrUserIDMissing = errors.New("message has no user id")

	// ErrTeamIDMissing is returned when a fetched user has no team id.
	ErrTeamIDMissing = errors.New("user has no team id")

	// ErrUserIDNotFoundInUserMap is returned when a referenced user was never fetched.
	ErrUserIDNotFoundInUserMap = errors.New("user id not found in user map")

	// ErrTeamIDNotFoundInTeamMap is returned when a referenced team was never fetched.
	ErrTeamIDNotFoundInTeamMap = errors.New("team id not found in team map")

	// ErrInvalidStateTransition is returned for a (state, flags) pair with no transition.
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// TransportError reports a failed request for one identifier.
type TransportError struct {
	ID  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request for %q failed: %v", e.ID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is reports ErrTransport so callers can match the class without a type assertion.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ResponseNotOkError carries the rejected response for diagnosis.
type ResponseNotOkError struct {
	Method   string
	Code     string // Slack's "error" field, e.g. "channel_not_found"
	Response string
}

func (e *ResponseNotOkError) Error() string {
	return fmt.Sprintf("%s returned ok=false (%s): %s", e.Method, e.Code, e.Response)
}

func (e *ResponseNotOkError) Is(target error) bool { return target == ErrResponseNotOk }
