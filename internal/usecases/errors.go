package usecases

import (
	"context"
	"errors"

	"slack-archiver/internal/domain"
)

// Error classes used for status codes and metric labels.
const (
	ClassOK          = "ok"
	ClassInput       = "input"
	ClassTransport   = "transport"
	ClassRemote      = "remote"
	ClassConsistency = "consistency"
	ClassTimeout     = "timeout"
	ClassInternal    = "internal"
)

var errorClasses = []struct {
	class string
	errs  []error
}{
	{ClassTimeout, []error{context.DeadlineExceeded, context.Canceled}},
	{ClassInput, []error{
		domain.ErrURLParse, domain.ErrChannelIDNotFound, domain.ErrTimestampNotFound,
		domain.ErrTimestampMalformed, domain.ErrInvalidAPIToken, domain.ErrInvalidCookie,
	}},
	{ClassTransport, []error{domain.ErrTransport}},
	{ClassRemote, []error{domain.ErrResponseNotOk, domain.ErrInvalidMessageResponse, domain.ErrMalformedResponse}},
	{ClassConsistency, []error{
		domain.ErrMessageNotFoundInThread, domain.ErrUserIDMissing, domain.ErrTeamIDMissing,
		domain.ErrUserIDNotFoundInUserMap, domain.ErrTeamIDNotFoundInTeamMap, domain.ErrInvalidStateTransition,
	}},
}

// ErrorClass names the class err belongs to, or ClassOK for nil.
func ErrorClass(err error) string {
	if err == nil {
		return ClassOK
	}
	for _, c := range errorClasses {
		for _, target := range c.errs {
			if errors.Is(err, target) {
				return c.class
			}
		}
	}
	return ClassInternal
}

// Describe renders err as the single line shown to users.
func Describe(err error) string {
	return "There was a problem getting slack messages: " + err.Error()
}
