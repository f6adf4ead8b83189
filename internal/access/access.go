/*
Package access implements caller roles for hooks which are internal to this
module.

Some operations, like registering mutation listeners on a tag hierarchy, must
only be called by certain components. These operations take a Token and
check its role. Tokens can only be obtained from within this module, and a
zero Token holds no role at all.

This guards against accidental misuse of internal hooks. It is not a
security boundary.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package access

import (
	"errors"
	"fmt"
)

// Role is a caller role.
type Role uint8

// Roles known to the module.
const (
	NoRole Role = iota
	PageRole
	TagRole
	AttributeRole
)

func (r Role) String() string {
	switch r {
	case PageRole:
		return "page"
	case TagRole:
		return "tag"
	case AttributeRole:
		return "attribute"
	}
	return "none"
}

// Token carries a caller role.
type Token struct {
	role Role
}

// PageToken is held by page orchestration code.
func PageToken() Token { return Token{role: PageRole} }

// TagToken is held by tag nodes.
func TagToken() Token { return Token{role: TagRole} }

// AttributeToken is held by attributes.
func AttributeToken() Token { return Token{role: AttributeRole} }

// Role returns the role of t.
func (t Token) Role() Role {
	return t.role
}

// ErrDenied is wrapped by every access Error.
var ErrDenied = errors.New("access denied")

// Error reports an operation called with a token lacking the required role.
type Error struct {
	Op   string
	Role Role
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: role %q may not call %s", ErrDenied, e.Role, e.Op)
}

func (e *Error) Unwrap() error {
	return ErrDenied
}

// Require panics with an *Error if t holds none of roles.
func (t Token) Require(op string, roles ...Role) {
	if t.role != NoRole {
		for _, r := range roles {
			if r == t.role {
				return
			}
		}
	}
	panic(&Error{Op: op, Role: t.role})
}
