package tag

import (
	"errors"
	"fmt"
)

// Errors returned by tag operations.
var (
	ErrNilTag            = errors.New("tag: nil tag")
	ErrCycle             = errors.New("tag: a tag cannot become its own descendant")
	ErrNoParent          = errors.New("tag: tag has no parent")
	ErrTextNode          = errors.New("tag: text nodes have neither children nor attributes")
	ErrReservedAttribute = errors.New("tag: attribute " + DataWffID + " is reserved")
	ErrInvalidAttribute  = errors.New("tag: invalid attribute")
	ErrInvalidValue      = errors.New("tag: invalid attribute value")
	ErrInvalidSelector   = errors.New("tag: invalid selector")
	ErrInvalidTagName    = errors.New("tag: invalid tag name")
)

// IDSpaceExhaustedError is raised when no more tag identifiers can be
// allocated for a hierarchy. The hierarchy cannot be used any longer.
type IDSpaceExhaustedError struct {
	Live int
}

func (e *IDSpaceExhaustedError) Error() string {
	return fmt.Sprintf("tag: identifier space exhausted with %d live tags", e.Live)
}

// ErrSelfInsert is returned when a tag is to be inserted next to itself.
var ErrSelfInsert = errors.New("tag: cannot insert a tag next to itself")
