package core

// errors.go defines the error taxonomy raised by the reconciliation engine
// and the mapping to user-facing messages.
//
// Only three error kinds originate inside the core:
//
//	SNAP001  - ErrMalformedSnapshot: the snapshot text is empty or headerless.
//	           Fatal to the current request and never retried here; the next
//	           request fetches a fresh export.
//	MATCH001 - ErrNoMatchingRecord: the quorum rule accepted no record.
//	           Surfaced to the caller as not-found, not as a transport fault.
//	QRY001   - ErrAmbiguousQuery: every identity field was empty. Rejected
//	           before matching is attempted.
//
// Everything else (fetch failures, update-post failures) belongs to the
// collaborator packages and is wrapped, not reclassified, here.

import "errors"

var (
	// ErrMalformedSnapshot means the snapshot text had zero non-blank lines.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrNoMatchingRecord means no record satisfied the quorum rule.
	ErrNoMatchingRecord = errors.New("no matching record")

	// ErrAmbiguousQuery means the identity query populated no fields.
	ErrAmbiguousQuery = errors.New("ambiguous query: no identity fields supplied")
)

// UserMessage is a support-friendly rendering of a core error.
type UserMessage struct {
	Code    string
	Message string
	Action  string
}

// MapError converts an error into a user-facing message with a support code.
// Unrecognized errors map to a generic message so internal details never
// leak to clients.
func MapError(err error) UserMessage {
	switch {
	case errors.Is(err, ErrMalformedSnapshot):
		return UserMessage{
			Code:    "SNAP001",
			Message: "Subscriber data is temporarily unavailable",
			Action:  "Please try again in a few moments",
		}
	case errors.Is(err, ErrNoMatchingRecord):
		return UserMessage{
			Code:    "MATCH001",
			Message: "No subscription found for the supplied details",
			Action:  "Check that at least two of email, phone, and username match your subscription",
		}
	case errors.Is(err, ErrAmbiguousQuery):
		return UserMessage{
			Code:    "QRY001",
			Message: "At least one identifier (email, phone, username) is required",
			Action:  "Supply an email address, phone number, or username",
		}
	default:
		return UserMessage{
			Code:    "GEN001",
			Message: "Something went wrong processing your request",
			Action:  "Please try again",
		}
	}
}
