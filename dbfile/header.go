// Package dbfile decodes and encodes the on-disk format of a SQLite-
// compatible main database file: its 100-byte header and its page map.
package dbfile

import (
	"github.com/waldgrove/sqlitewal/binreader"
	"github.com/waldgrove/sqlitewal/dberrors"
)

// HeaderSize is the fixed size of the database header.
const HeaderSize = 100

// MagicString is the canonical 16-byte magic literal every database file
// begins with.
const MagicString = "SQLite format 3\x00"

// TextEncoding identifies the database's text encoding.
type TextEncoding uint32

const (
	EncodingUnspecified TextEncoding = 0
	EncodingUTF8        TextEncoding = 1
	EncodingUTF16LE     TextEncoding = 2
	EncodingUTF16BE     TextEncoding = 3
)

// Header is the 100-byte database header, field order matching the wire
// layout exactly.
type Header struct {
	PageSize          uint32 // normalised; 65536 is represented as 65536, not 1
	FileFormatWrite   uint8
	FileFormatRead    uint8
	MaxPayloadFrac    uint8
	MinPayloadFrac    uint8
	LeafPayloadFrac   uint8
	FileChangeCounter uint32
	PageCount         uint32
	FreelistTrunk     uint32
	FreelistCount     uint32
	SchemaCookie      uint32
	SchemaFormat      uint32
	DefaultCacheSize  uint32
	LargestRootPage   uint32
	TextEncoding      TextEncoding
	UserVersion       uint32
	VacuumMode        uint32
	ApplicationID     uint32
	VersionValidFor   uint32
	SQLiteVersion     uint32
}

func decodeTextEncoding(v uint32) (TextEncoding, error) {
	switch v {
	case 0:
		return EncodingUnspecified, nil
	case 1:
		return EncodingUTF8, nil
	case 2:
		return EncodingUTF16LE, nil
	case 3:
		return EncodingUTF16BE, nil
	default:
		return 0, dberrors.New(dberrors.KindUnsupportedEncoding, "unknown text encoding word")
	}
}

// DecodeHeader parses the 100-byte database header.
func DecodeHeader(b []byte) (*Header, error) {
	magic, rest, err := binreader.ReadBytes(b, 16)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindInvalidMagic, "reading magic", err)
	}
	if string(magic) != MagicString {
		return nil, dberrors.New(dberrors.KindInvalidMagic, "magic string mismatch")
	}

	pageSizeRaw, rest, err := binreader.ReadU16(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading page size", err)
	}
	pageSize := normalizePageSize(pageSizeRaw)

	ffw, rest, err := binreader.ReadU8(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading file format write version", err)
	}
	ffr, rest, err := binreader.ReadU8(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading file format read version", err)
	}
	_, rest, err = binreader.ReadU8(rest) // reserved byte at offset 20
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading reserved byte", err)
	}
	maxFrac, rest, err := binreader.ReadU8(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading max payload fraction", err)
	}
	minFrac, rest, err := binreader.ReadU8(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading min payload fraction", err)
	}
	leafFrac, rest, err := binreader.ReadU8(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading leaf payload fraction", err)
	}

	names := [14]string{
		"file change counter", "page count", "freelist trunk", "freelist count",
		"schema cookie", "schema format", "default cache size", "largest root page",
		"text encoding", "user version", "vacuum mode", "application id",
		"version valid for", "sqlite version",
	}

	fileChangeCounter, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[0], err)
	}
	pageCount, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[1], err)
	}
	freelistTrunk, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[2], err)
	}
	freelistCount, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[3], err)
	}
	schemaCookie, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[4], err)
	}
	schemaFormat, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[5], err)
	}
	defaultCacheSize, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[6], err)
	}
	largestRootPage, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[7], err)
	}
	textEncodingRaw, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[8], err)
	}
	textEncoding, err := decodeTextEncoding(textEncodingRaw)
	if err != nil {
		return nil, err
	}
	userVersion, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[9], err)
	}
	vacuumMode, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[10], err)
	}
	applicationID, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[11], err)
	}
	_, rest, err = binreader.ReadBytes(rest, 20) // 20 reserved zero bytes
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading reserved region", err)
	}
	versionValidFor, rest, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[12], err)
	}
	sqliteVersion, _, err := binreader.ReadU32(rest)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading "+names[13], err)
	}

	return &Header{
		PageSize:          pageSize,
		FileFormatWrite:   ffw,
		FileFormatRead:    ffr,
		MaxPayloadFrac:    maxFrac,
		MinPayloadFrac:    minFrac,
		LeafPayloadFrac:   leafFrac,
		FileChangeCounter: fileChangeCounter,
		PageCount:         pageCount,
		FreelistTrunk:     freelistTrunk,
		FreelistCount:     freelistCount,
		SchemaCookie:      schemaCookie,
		SchemaFormat:      schemaFormat,
		DefaultCacheSize:  defaultCacheSize,
		LargestRootPage:   largestRootPage,
		TextEncoding:      textEncoding,
		UserVersion:       userVersion,
		VacuumMode:        vacuumMode,
		ApplicationID:     applicationID,
		VersionValidFor:   versionValidFor,
		SQLiteVersion:     sqliteVersion,
	}, nil
}

// EncodeHeader serializes a Header back to its 100-byte wire form.
func EncodeHeader(h *Header) []byte {
	buf := make([]byte, 0, HeaderSize)
	buf = append(buf, MagicString...)
	buf = binreader.PutU16(buf, denormalizePageSize(h.PageSize))
	buf = append(buf, h.FileFormatWrite, h.FileFormatRead, 0 /* reserved */)
	buf = append(buf, h.MaxPayloadFrac, h.MinPayloadFrac, h.LeafPayloadFrac)
	buf = binreader.PutU32(buf, h.FileChangeCounter)
	buf = binreader.PutU32(buf, h.PageCount)
	buf = binreader.PutU32(buf, h.FreelistTrunk)
	buf = binreader.PutU32(buf, h.FreelistCount)
	buf = binreader.PutU32(buf, h.SchemaCookie)
	buf = binreader.PutU32(buf, h.SchemaFormat)
	buf = binreader.PutU32(buf, h.DefaultCacheSize)
	buf = binreader.PutU32(buf, h.LargestRootPage)
	buf = binreader.PutU32(buf, uint32(h.TextEncoding))
	buf = binreader.PutU32(buf, h.UserVersion)
	buf = binreader.PutU32(buf, h.VacuumMode)
	buf = binreader.PutU32(buf, h.ApplicationID)
	buf = append(buf, make([]byte, 20)...)
	buf = binreader.PutU32(buf, h.VersionValidFor)
	buf = binreader.PutU32(buf, h.SQLiteVersion)
	return buf
}

// normalizePageSize maps the wire sentinel 1 to 65536.
func normalizePageSize(raw uint16) uint32 {
	if raw == 1 {
		return 65536
	}
	return uint32(raw)
}

// denormalizePageSize maps 65536 back to the wire sentinel 1.
func denormalizePageSize(pageSize uint32) uint16 {
	if pageSize == 65536 {
		return 1
	}
	return uint16(pageSize)
}
