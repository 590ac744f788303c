package scoring

import (
	"errors"
	"fmt"

	"github.com/okian/prode/internal/domain/model"
)

// ErrMalformedInput is the sentinel kind for broken input records; use
// errors.Is against it and errors.As for the typed detail.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError describes a record that cannot be scored: a finished
// match with missing goals, or a revision submitted after a confirmed
// kickoff. It is surfaced, never coerced.
type MalformedInputError struct {
	MatchID model.MatchID
	UserID  model.UserID
	Reason  string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: match=%d user=%d: %s", e.MatchID, e.UserID, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }
