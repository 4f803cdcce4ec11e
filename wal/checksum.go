package wal

import (
	"encoding/binary"

	"github.com/waldgrove/sqlitewal/dberrors"
)

// Checksum is the running two-word accumulator threaded through a WAL
// header and every frame that follows it. Each 8-byte group is read as two
// big-endian uint32 words and folded with wrapping addition, regardless of
// which magic word the WAL declares.
type Checksum struct {
	S1, S2 uint32
}

// Fold extends the checksum over b, which must be a whole number of 8-byte
// (two big-endian uint32 word) groups.
func (c Checksum) Fold(b []byte) (Checksum, error) {
	if len(b)%8 != 0 {
		return Checksum{}, dberrors.New(dberrors.KindChecksumMisaligned, "checksum input is not a multiple of 8 bytes")
	}
	s1, s2 := c.S1, c.S2
	for i := 0; i < len(b); i += 8 {
		w0 := binary.BigEndian.Uint32(b[i : i+4])
		w1 := binary.BigEndian.Uint32(b[i+4 : i+8])
		s1 += w0 + s2
		s2 += w1 + s1
	}
	return Checksum{S1: s1, S2: s2}, nil
}
