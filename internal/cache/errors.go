package cache

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every error returned for a malformed key or
// key collection. Storage faults never produce it.
var ErrInvalidArgument = errors.New("cache: invalid argument")

// InvalidArgumentError carries the rejected key (if any) and the reason.
type InvalidArgumentError struct {
	Key    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrInvalidArgument) hold.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidKey(key string) error {
	return &InvalidArgumentError{Key: key, Reason: fmt.Sprintf("Invalid key '%s'", key)}
}

func invalidKeyType(v any) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf("Expected key to be a string, not %s", describeType(v))}
}

func invalidCollection(name string) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf("%s is not iterable", name)}
}
