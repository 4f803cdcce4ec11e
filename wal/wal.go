// Package wal decodes and encodes SQLite write-ahead log files: the
// 32-byte WAL header and the ordered 24-byte-header frames that follow it,
// using the two-word streaming checksum SQLite threads through every frame.
package wal

import (
	"github.com/waldgrove/sqlitewal/binreader"
	"github.com/waldgrove/sqlitewal/dberrors"
)

const (
	// HeaderSize is the fixed size of the WAL header.
	HeaderSize = 32
	// FrameHeaderSize is the fixed size of a frame header, preceding each
	// page-sized frame payload.
	FrameHeaderSize = 24

	// MagicBigEndian and MagicLittleEndian are the two accepted magic
	// numbers; both decode with the same big-endian checksum accumulator.
	// The distinction historically recorded native byte order for the
	// checksum, which this module does not vary by.
	MagicBigEndian    uint32 = 0x377f0682
	MagicLittleEndian uint32 = 0x377f0683

	// SupportedFileFormat is the only WAL file-format version decoded.
	SupportedFileFormat uint32 = 3007000
)

// Header is the 32-byte WAL header.
type Header struct {
	Magic         uint32
	FileFormat    uint32
	PageSize      uint32
	CheckpointSeq uint32
	Salt1, Salt2  uint32
	Checksum1     uint32
	Checksum2     uint32
}

// Frame is a single WAL frame: its 24-byte header plus its page-sized
// payload.
type Frame struct {
	PageNumber        uint32
	DBSizeAfterCommit uint32 // non-zero marks this frame as a commit boundary
	Salt1, Salt2      uint32
	Checksum1         uint32
	Checksum2         uint32
	Page              []byte
}

// IsCommit reports whether this frame closes a transaction.
func (f Frame) IsCommit() bool {
	return f.DBSizeAfterCommit != 0
}

// WAL is a decoded write-ahead log: its header plus the ordered frames
// that follow it.
type WAL struct {
	Header Header
	Frames []Frame
}

func decodeHeader(b []byte) (Header, []byte, error) {
	magic, rest, err := binreader.ReadU32(b)
	if err != nil {
		return Header{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading wal magic", err)
	}
	if magic != MagicBigEndian && magic != MagicLittleEndian {
		return Header{}, nil, dberrors.New(dberrors.KindInvalidMagic, "wal magic mismatch")
	}
	fileFormat, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Header{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading wal file format", err)
	}
	if fileFormat != SupportedFileFormat {
		return Header{}, nil, dberrors.New(dberrors.KindUnsupportedFormat, "unsupported wal file format version")
	}
	pageSize, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Header{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading wal page size", err)
	}
	checkpointSeq, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Header{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading wal checkpoint sequence", err)
	}
	salt1, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Header{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading wal salt 1", err)
	}
	salt2, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Header{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading wal salt 2", err)
	}
	checksum1, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Header{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading wal checksum word 1", err)
	}
	checksum2, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Header{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading wal checksum word 2", err)
	}
	return Header{
		Magic:         magic,
		FileFormat:    fileFormat,
		PageSize:      pageSize,
		CheckpointSeq: checkpointSeq,
		Salt1:         salt1,
		Salt2:         salt2,
		Checksum1:     checksum1,
		Checksum2:     checksum2,
	}, rest, nil
}

func decodeFrameHeader(b []byte) (Frame, []byte, error) {
	pageNumber, rest, err := binreader.ReadU32(b)
	if err != nil {
		return Frame{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading frame page number", err)
	}
	dbSize, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Frame{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading frame commit size", err)
	}
	salt1, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Frame{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading frame salt 1", err)
	}
	salt2, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Frame{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading frame salt 2", err)
	}
	checksum1, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Frame{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading frame checksum word 1", err)
	}
	checksum2, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return Frame{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading frame checksum word 2", err)
	}
	return Frame{
		PageNumber:        pageNumber,
		DBSizeAfterCommit: dbSize,
		Salt1:             salt1,
		Salt2:             salt2,
		Checksum1:         checksum1,
		Checksum2:         checksum2,
	}, rest, nil
}

// Decode parses a full WAL file image. Frames whose salts disagree with
// the header's salts are rejected: a mismatch means the writer restarted
// mid-file and the remainder belongs to a different generation. A
// trailing run of bytes too short to hold a full frame is tolerated and
// ignored, matching a writer crashing mid-append.
func Decode(b []byte) (*WAL, error) {
	if len(b) < HeaderSize {
		return nil, dberrors.New(dberrors.KindEndOfInput, "wal shorter than header")
	}
	header, rest, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	pageSize := int(header.PageSize)
	frameSize := FrameHeaderSize + pageSize

	var frames []Frame
	for len(rest) >= frameSize {
		frame, afterHeader, err := decodeFrameHeader(rest)
		if err != nil {
			return nil, err
		}
		if frame.Salt1 != header.Salt1 || frame.Salt2 != header.Salt2 {
			return nil, dberrors.New(dberrors.KindSaltMismatch, "frame salts disagree with wal header salts")
		}
		page, _, err := binreader.ReadBytes(afterHeader, pageSize)
		if err != nil {
			return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading frame payload", err)
		}
		frame.Page = append([]byte(nil), page...)
		frames = append(frames, frame)
		rest = rest[frameSize:]
	}

	return &WAL{Header: header, Frames: frames}, nil
}

// Encode serializes a WAL back to its wire form. It always emits
// MagicLittleEndian regardless of the magic recorded on w.Header, and
// recomputes every checksum word rather than trusting whatever was decoded.
func Encode(w *WAL) []byte {
	headerBody := make([]byte, 0, HeaderSize-8)
	headerBody = binreader.PutU32(headerBody, MagicLittleEndian)
	headerBody = binreader.PutU32(headerBody, w.Header.FileFormat)
	headerBody = binreader.PutU32(headerBody, w.Header.PageSize)
	headerBody = binreader.PutU32(headerBody, w.Header.CheckpointSeq)
	headerBody = binreader.PutU32(headerBody, w.Header.Salt1)
	headerBody = binreader.PutU32(headerBody, w.Header.Salt2)

	sum, _ := Checksum{}.Fold(headerBody)

	out := make([]byte, 0, HeaderSize+len(w.Frames)*(FrameHeaderSize+int(w.Header.PageSize)))
	out = append(out, headerBody...)
	out = binreader.PutU32(out, sum.S1)
	out = binreader.PutU32(out, sum.S2)

	for _, f := range w.Frames {
		frameHead := make([]byte, 0, 8)
		frameHead = binreader.PutU32(frameHead, f.PageNumber)
		frameHead = binreader.PutU32(frameHead, f.DBSizeAfterCommit)
		sum, _ = sum.Fold(frameHead)
		sum, _ = sum.Fold(f.Page)

		out = append(out, frameHead...)
		out = binreader.PutU32(out, w.Header.Salt1)
		out = binreader.PutU32(out, w.Header.Salt2)
		out = binreader.PutU32(out, sum.S1)
		out = binreader.PutU32(out, sum.S2)
		out = append(out, f.Page...)
	}

	return out
}
