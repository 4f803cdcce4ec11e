// Package binreader provides total, non-panicking readers over a byte
// slice: big-endian fixed-width integers, bounded byte slices, and the
// SQLite variable-length integer encoding. Every reader returns the
// unconsumed remainder alongside its value, so callers thread state
// explicitly rather than through a mutable cursor.
package binreader

import (
	"encoding/binary"

	"github.com/waldgrove/sqlitewal/dberrors"
)

// ReadU8 consumes one byte.
func ReadU8(b []byte) (byte, []byte, error) {
	if len(b) < 1 {
		return 0, nil, dberrors.New(dberrors.KindEndOfInput, "read_u8: need 1 byte")
	}
	return b[0], b[1:], nil
}

// ReadU16 consumes a big-endian 16-bit integer.
func ReadU16(b []byte) (uint16, []byte, error) {
	if len(b) < 2 {
		return 0, nil, dberrors.New(dberrors.KindEndOfInput, "read_u16: need 2 bytes")
	}
	return binary.BigEndian.Uint16(b), b[2:], nil
}

// ReadU32 consumes a big-endian 32-bit integer.
func ReadU32(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, dberrors.New(dberrors.KindEndOfInput, "read_u32: need 4 bytes")
	}
	return binary.BigEndian.Uint32(b), b[4:], nil
}

// ReadBytes consumes a bounded slice of n bytes.
func ReadBytes(b []byte, n int) ([]byte, []byte, error) {
	if n < 0 || len(b) < n {
		return nil, nil, dberrors.New(dberrors.KindEndOfInput, "read_bytes: short input")
	}
	return b[:n], b[n:], nil
}

// PutU16 appends a big-endian 16-bit integer.
func PutU16(dst []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(dst, tmp[:]...)
}

// PutU32 appends a big-endian 32-bit integer.
func PutU32(dst []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(dst, tmp[:]...)
}

// ReadVarint decodes a SQLite variable-length integer: up to eight 7-bit
// big-endian groups with a continuation bit, and a ninth byte that
// contributes all eight bits. It returns the value and the number of bytes
// consumed (1..=9).
func ReadVarint(b []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < 8; i++ {
		if i >= len(b) {
			return 0, 0, dberrors.New(dberrors.KindEndOfInput, "read_varint: truncated")
		}
		v = (v << 7) + uint64(b[i]&0x7f)
		if b[i]&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	if len(b) < 9 {
		return 0, 0, dberrors.New(dberrors.KindEndOfInput, "read_varint: truncated ninth byte")
	}
	v = (v << 8) + uint64(b[8])
	return v, 9, nil
}

// VarintLen returns the number of bytes PutVarint would write for v.
func VarintLen(v uint64) int {
	n := 1
	for shifted := v >> 7; shifted != 0; shifted >>= 7 {
		n++
		if n == 9 {
			break
		}
	}
	return n
}

// PutVarint appends v as a SQLite variable-length integer and returns the
// extended slice.
func PutVarint(dst []byte, v uint64) []byte {
	n := VarintLen(v)
	if n < 9 {
		var buf [9]byte
		for i := n - 1; i >= 0; i-- {
			buf[i] = byte(v & 0x7f)
			if i != n-1 {
				buf[i] |= 0x80
			}
			v >>= 7
		}
		return append(dst, buf[:n]...)
	}

	// Ninth byte carries all eight bits; the first eight carry 7 bits each,
	// most-significant group first.
	var buf [9]byte
	buf[8] = byte(v)
	v >>= 8
	for i := 7; i >= 0; i-- {
		buf[i] = byte(v&0x7f) | 0x80
		v >>= 7
	}
	return append(dst, buf[:]...)
}
