package domainerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable classification of a domain failure. Handlers map
// kinds onto HTTP status codes; clients switch on the kind, not the message.
type Kind string

const (
	// KindInvalidTransition indicates the matchday is not in a state that
	// permits the requested lifecycle operation.
	KindInvalidTransition Kind = "InvalidTransition"

	// KindIneligibleVoter indicates the player may not vote (not approved,
	// suspended, or dues not in good standing).
	KindIneligibleVoter Kind = "IneligibleVoter"

	// KindVotingClosed indicates a vote mutation arrived after voting closed.
	KindVotingClosed Kind = "VotingClosed"

	// KindAlreadyGenerated indicates fixtures were already generated.
	KindAlreadyGenerated Kind = "AlreadyGenerated"

	// KindAlreadyEnded indicates the fixture or matchday already ended.
	KindAlreadyEnded Kind = "AlreadyEnded"

	// KindInvalidMove indicates a group move with a bad source or target.
	KindInvalidMove Kind = "InvalidMove"

	// KindNotPresent indicates an event names a player not marked present.
	KindNotPresent Kind = "NotPresent"

	// KindConflictingState indicates the operation conflicts with published
	// or recorded data (e.g. regenerating groups under published fixtures).
	KindConflictingState Kind = "ConflictingState"

	// KindNotFound indicates the referenced entity does not exist.
	KindNotFound Kind = "NotFound"
)

// Error is a domain failure with a machine-readable kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a domain error with the given kind and formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error that preserves the underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, unwrapping as needed.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// HTTPStatus maps a kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindIneligibleVoter:
		return http.StatusForbidden
	default:
		return http.StatusConflict
	}
}
