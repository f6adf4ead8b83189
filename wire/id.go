package wire

import (
	"errors"
	"fmt"
	"strconv"
)

// Prefixes of tag identifiers.
const (
	ServerPrefix byte = 'S'
	ClientPrefix byte = 'C'
)

// ErrInvalidID is returned for identifiers which are neither S<int> nor C<int>.
var ErrInvalidID = errors.New("wire: invalid tag identifier")

// IDBytes converts an identifier like "S12" into its wire form: the prefix
// byte followed by the optimized integer.
func IDBytes(id string) ([]byte, error) {
	if len(id) < 2 || (id[0] != ServerPrefix && id[0] != ClientPrefix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	n, err := strconv.ParseInt(id[1:], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	b := make([]byte, 1, 5)
	b[0] = id[0]
	return appendOptimized(b, int32(n), OptimizedWidth(int32(n))), nil
}

// MustIDBytes is like IDBytes but panics on invalid identifiers. It is meant
// for identifiers allocated by this module.
func MustIDBytes(id string) []byte {
	b, err := IDBytes(id)
	if err != nil {
		panic(err)
	}
	return b
}

// IDFromBytes is the inverse of IDBytes.
func IDFromBytes(b []byte) (string, error) {
	if len(b) < 2 || (b[0] != ServerPrefix && b[0] != ClientPrefix) {
		return "", fmt.Errorf("%w: %v", ErrInvalidID, b)
	}
	n, err := IntFromOptimized(b[1:])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidID, b)
	}
	return string(b[0]) + strconv.FormatInt(int64(n), 10), nil
}
