package wal

import (
	"testing"

	"github.com/waldgrove/sqlitewal/dberrors"
)

func sampleWAL(pageSize uint32, numFrames int) *WAL {
	h := Header{
		Magic:         MagicLittleEndian,
		FileFormat:    SupportedFileFormat,
		PageSize:      pageSize,
		CheckpointSeq: 0,
		Salt1:         1,
		Salt2:         2,
	}
	w := &WAL{Header: h}
	for i := 0; i < numFrames; i++ {
		page := make([]byte, pageSize)
		page[0] = byte(i + 1)
		dbSize := uint32(0)
		if i == numFrames-1 {
			dbSize = uint32(numFrames) // last frame in the sample commits
		}
		w.Frames = append(w.Frames, Frame{
			PageNumber:        uint32(i + 1),
			DBSizeAfterCommit: dbSize,
			Salt1:             1,
			Salt2:             2,
			Page:              page,
		})
	}
	return w
}

func TestWALRoundTrip(t *testing.T) {
	w := sampleWAL(4096, 3)
	encoded := Encode(w)

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Frames) != 3 {
		t.Fatalf("frame count = %d, want 3", len(decoded.Frames))
	}
	if decoded.Header.Magic != MagicLittleEndian {
		t.Fatalf("magic = %x, want %x", decoded.Header.Magic, MagicLittleEndian)
	}
	for i, f := range decoded.Frames {
		if f.Page[0] != byte(i+1) {
			t.Fatalf("frame %d marker = %d, want %d", i, f.Page[0], i+1)
		}
	}
	if !decoded.Frames[2].IsCommit() {
		t.Fatal("last frame should be a commit boundary")
	}
}

func TestEncodeAlwaysEmitsMagicLittleEndian(t *testing.T) {
	w := sampleWAL(4096, 1)
	w.Header.Magic = MagicBigEndian // decoded value should not survive encode

	encoded := Encode(w)
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Header.Magic != MagicLittleEndian {
		t.Fatalf("magic = %x, want %x regardless of input", decoded.Header.Magic, MagicLittleEndian)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	w := sampleWAL(4096, 1)
	encoded := Encode(w)
	encoded[0] = 0xff

	_, err := Decode(encoded)
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	derr, ok := err.(*dberrors.Error)
	if !ok || derr.Kind != dberrors.KindInvalidMagic {
		t.Fatalf("error = %v, want KindInvalidMagic", err)
	}
}

func TestDecodeRejectsSaltMismatch(t *testing.T) {
	w := sampleWAL(4096, 2)
	encoded := Encode(w)

	// Corrupt the second frame's salt word (frame 2 starts right after the
	// header and one full frame).
	secondFrameSalt1Offset := HeaderSize + (FrameHeaderSize + 4096) + 8
	encoded[secondFrameSalt1Offset] ^= 0xff

	_, err := Decode(encoded)
	if err == nil {
		t.Fatal("expected error for salt mismatch")
	}
	derr, ok := err.(*dberrors.Error)
	if !ok || derr.Kind != dberrors.KindSaltMismatch {
		t.Fatalf("error = %v, want KindSaltMismatch", err)
	}
}

func TestDecodeToleratesShortTrailingFrame(t *testing.T) {
	w := sampleWAL(4096, 2)
	encoded := Encode(w)
	truncated := append(encoded, make([]byte, 10)...) // partial third frame

	decoded, err := Decode(truncated)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Frames) != 2 {
		t.Fatalf("frame count = %d, want 2 (trailing partial frame ignored)", len(decoded.Frames))
	}
}

func TestDecodeRejectsUnsupportedFileFormat(t *testing.T) {
	w := sampleWAL(4096, 0)
	w.Header.FileFormat = 1
	encoded := Encode(w)

	_, err := Decode(encoded)
	if err == nil {
		t.Fatal("expected error for unsupported file format")
	}
	derr, ok := err.(*dberrors.Error)
	if !ok || derr.Kind != dberrors.KindUnsupportedFormat {
		t.Fatalf("error = %v, want KindUnsupportedFormat", err)
	}
}
