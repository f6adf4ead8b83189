package wire

import (
	"fmt"
)

// OptimizedWidth returns the number of bytes needed to hold v as an optimized
// integer. Negative values always need 4 bytes.
func OptimizedWidth(v int32) int {
	switch {
	case v < 0:
		return 4
	case v <= 0xff:
		return 1
	case v <= 0xffff:
		return 2
	case v <= 0xffffff:
		return 3
	}
	return 4
}

// OptimizedBytes encodes v big-endian in the minimum number of bytes.
func OptimizedBytes(v int32) []byte {
	return appendOptimized(make([]byte, 0, 4), v, OptimizedWidth(v))
}

func appendOptimized(buf []byte, v int32, width int) []byte {
	u := uint32(v)
	for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
		buf = append(buf, byte(u>>uint(shift)))
	}
	return buf
}

// IntFromOptimized decodes an integer produced by OptimizedBytes.
// Widths of 1 to 3 bytes are unsigned, a width of 4 bytes is read as a
// two's complement int32.
func IntFromOptimized(b []byte) (int32, error) {
	if len(b) == 0 || len(b) > 4 {
		return 0, fmt.Errorf("%w: optimized int of width %d", ErrMalformed, len(b))
	}
	var u uint32
	for _, x := range b {
		u = u<<8 | uint32(x)
	}
	return int32(u), nil
}

// --- Tagged lengths --------------------------------------------------------

func appendLength(buf []byte, n int) []byte {
	w := OptimizedWidth(int32(n))
	buf = append(buf, byte(w))
	return appendOptimized(buf, int32(n), w)
}

// readLength reads a tagged length at position pos. It returns the length
// and the position after it.
func readLength(msg []byte, pos int) (int, int, error) {
	if pos >= len(msg) {
		return 0, pos, fmt.Errorf("%w: missing length tag at %d", ErrMalformed, pos)
	}
	w := int(msg[pos])
	if w < 1 || w > 4 {
		return 0, pos, fmt.Errorf("%w: invalid length tag %d at %d", ErrMalformed, w, pos)
	}
	pos++
	if len(msg)-pos < w {
		return 0, pos, fmt.Errorf("%w: truncated length at %d", ErrMalformed, pos)
	}
	n, _ := IntFromOptimized(msg[pos : pos+w])
	if n < 0 {
		return 0, pos, fmt.Errorf("%w: negative length at %d", ErrMalformed, pos)
	}
	return int(n), pos + w, nil
}
