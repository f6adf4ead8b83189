package wire

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned (wrapped) for every message that cannot be decoded.
var ErrMalformed = errors.New("wire: malformed message")

// NameValue is a single record of a message: a name and an ordered list of
// values, all of them raw bytes.
type NameValue struct {
	Name   []byte
	Values [][]byte
}

// NV is a shortcut for building a record from a name and values.
func NV(name []byte, values ...[]byte) NameValue {
	return NameValue{Name: name, Values: values}
}

func (nv NameValue) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{%q:", nv.Name)
	for i, v := range nv.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%q", v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equal compares two records byte-wise. Nil and empty slices compare equal.
func (nv NameValue) Equal(other NameValue) bool {
	if !bytes.Equal(nv.Name, other.Name) || len(nv.Values) != len(other.Values) {
		return false
	}
	for i := range nv.Values {
		if !bytes.Equal(nv.Values[i], other.Values[i]) {
			return false
		}
	}
	return true
}

// EqualRecords compares two lists of records.
func EqualRecords(a, b []NameValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Encode concatenates the encodings of records.
func Encode(records []NameValue) []byte {
	size := 0
	for _, nv := range records {
		size += 10 + len(nv.Name)
		for _, v := range nv.Values {
			size += 5 + len(v)
		}
	}
	buf := make([]byte, 0, size)
	for _, nv := range records {
		buf = appendLength(buf, len(nv.Name))
		buf = append(buf, nv.Name...)
		buf = appendLength(buf, len(nv.Values))
		for _, v := range nv.Values {
			buf = appendLength(buf, len(v))
			buf = append(buf, v...)
		}
	}
	return buf
}

// Decode reads records until msg is exhausted. Either all records are
// returned or an error wrapping ErrMalformed.
func Decode(msg []byte) ([]NameValue, error) {
	var records []NameValue
	pos := 0
	for pos < len(msg) {
		nv, next, err := decodeRecord(msg, pos)
		if err != nil {
			tracer().Debugf("decode failed after %d records: %v", len(records), err)
			return nil, err
		}
		records = append(records, nv)
		pos = next
	}
	return records, nil
}

func decodeRecord(msg []byte, pos int) (NameValue, int, error) {
	var nv NameValue
	name, pos, err := readField(msg, pos)
	if err != nil {
		return nv, pos, err
	}
	nv.Name = name
	count, pos, err := readLength(msg, pos)
	if err != nil {
		return nv, pos, err
	}
	if count > len(msg)-pos { // every value needs at least one byte
		return nv, pos, fmt.Errorf("%w: value count %d exceeds message", ErrMalformed, count)
	}
	nv.Values = make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		var v []byte
		if v, pos, err = readField(msg, pos); err != nil {
			return nv, pos, err
		}
		nv.Values = append(nv.Values, v)
	}
	return nv, pos, nil
}

func readField(msg []byte, pos int) ([]byte, int, error) {
	n, pos, err := readLength(msg, pos)
	if err != nil {
		return nil, pos, err
	}
	if n > len(msg)-pos {
		return nil, pos, fmt.Errorf("%w: field of length %d exceeds remaining %d bytes",
			ErrMalformed, n, len(msg)-pos)
	}
	field := make([]byte, n)
	copy(field, msg[pos:pos+n])
	return field, pos + n, nil
}
