package convert

import (
	"errors"
	"fmt"
)

// Kind classifies a failed conversion. Kinds are stable and safe to show to callers.
type Kind string

const (
	KindMissingInput    Kind = "MissingInput"
	KindContentBlocked  Kind = "ContentBlocked"
	KindMalformedReply  Kind = "MalformedReply"
	KindProviderFailure Kind = "ProviderFailure"
)

// Reasons a provider reply could not be parsed. Match them with errors.Is.
var (
	ErrTagNotFound       = errors.New("code delimiter not found")
	ErrCodeExtraction    = errors.New("code extraction failed")
	ErrSummaryExtraction = errors.New("summary extraction failed")
)

// User-facing messages. Clients match on these strings.
const (
	msgMissingInput    = "No code provided."
	msgContentBlocked  = "Request blocked by content filter."
	msgTagNotFound     = "Failed to find <TypeScriptCode> tag in OpenAI response."
	msgCodeExtraction  = "Failed to extract TypeScript code from OpenAI response."
	msgSummaryExtract  = "Failed to extract summary from OpenAI response."
	msgProviderFailure = "Internal server error"
)

// Error is returned by Service.Convert for every failure.
type Error struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func missingInput() *Error {
	return &Error{Kind: KindMissingInput, Message: msgMissingInput}
}

func contentBlocked(details string) *Error {
	return &Error{Kind: KindContentBlocked, Message: msgContentBlocked, Details: details}
}

func providerFailure(err error) *Error {
	return &Error{Kind: KindProviderFailure, Message: msgProviderFailure, Details: err.Error(), Err: err}
}

func malformedReply(reason error) *Error {
	msg := msgSummaryExtract
	switch {
	case errors.Is(reason, ErrTagNotFound):
		msg = msgTagNotFound
	case errors.Is(reason, ErrCodeExtraction):
		msg = msgCodeExtraction
	}
	return &Error{Kind: KindMalformedReply, Message: msg, Err: reason}
}

// outcome is the metrics label for err.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var ce *Error
	if errors.As(err, &ce) {
		switch ce.Kind {
		case KindMissingInput:
			return "missing_input"
		case KindContentBlocked:
			return "content_blocked"
		case KindMalformedReply:
			return "malformed_reply"
		}
	}
	return "provider_failure"
}
