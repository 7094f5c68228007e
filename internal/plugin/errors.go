package plugin

import (
	"errors"
	"fmt"
)

var (
	// ErrPluginNotFound matches every *NotFoundError via errors.Is.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrClassNotFound is returned by FactoryRegistry for unknown classes.
	ErrClassNotFound = errors.New("class not found")
)

// Reason explains why a plugin lookup failed.
type Reason string

const (
	ReasonNoBootstrap  Reason = "no bootstrap file"
	ReasonTypeMismatch Reason = "type mismatch"
)

// NotFoundError is returned when a plugin cannot be resolved in a namespace,
// either because no prefix path holds its bootstrap file or because the
// resolved bootstrap lacks the capability the caller asked for.
type NotFoundError struct {
	Plugin    string
	Namespace string
	Reason    Reason
	Expected  string // set for ReasonTypeMismatch
	Actual    string // set for ReasonTypeMismatch
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("plugin %q in namespace %q not found", e.Plugin, e.Namespace)
	switch e.Reason {
	case "":
		return msg
	case ReasonTypeMismatch:
		return fmt.Sprintf("%s: %s: want %s, got %s", msg, e.Reason, e.Expected, e.Actual)
	default:
		return msg + ": " + string(e.Reason)
	}
}

// Is reports whether target is ErrPluginNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrPluginNotFound
}
