package replay

import (
	"errors"
	"fmt"

	"github.com/okian/prode/internal/domain/model"
)

// ErrUnknownUser is the sentinel for subset members outside the user set.
var ErrUnknownUser = errors.New("unknown user in replay subset")

// UnknownUserError identifies which subset member is not a known user.
type UnknownUserError struct {
	UserID model.UserID
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user %d in replay subset", e.UserID)
}

func (e *UnknownUserError) Unwrap() error { return ErrUnknownUser }
