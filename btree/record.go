package btree

import (
	"github.com/waldgrove/sqlitewal/binreader"
	"github.com/waldgrove/sqlitewal/dberrors"
	"github.com/waldgrove/sqlitewal/dbfile"
)

// ValueKind tags which alternative a Value holds.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueInt8
	ValueInt16
	ValueBlob
	ValueText
)

// Value is a single decoded record column. Only the serial types this
// module actually produces are represented: NULL, 8-bit and 16-bit
// signed integers, blobs (even codes above 12), and UTF-8 text (odd codes
// above 13). Every other serial type code (the wider integers, floats, the
// 8/9 constant codes SQLite defines, and the zero-length codes 12 and 13)
// is rejected with KindUnsupportedSerialType rather than silently
// approximated.
type Value struct {
	Kind ValueKind
	Int  int16
	Blob []byte
	Text string
}

func decodeRecordValue(enc dbfile.TextEncoding, serialType uint64, b []byte) (Value, []byte, error) {
	switch {
	case serialType == 0:
		return Value{Kind: ValueNull}, b, nil
	case serialType == 1:
		v, rest, err := binreader.ReadU8(b)
		if err != nil {
			return Value{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading int8 column", err)
		}
		return Value{Kind: ValueInt8, Int: int16(int8(v))}, rest, nil
	case serialType == 2:
		v, rest, err := binreader.ReadU16(b)
		if err != nil {
			return Value{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading int16 column", err)
		}
		return Value{Kind: ValueInt16, Int: int16(v)}, rest, nil
	case serialType > 12 && serialType%2 == 0:
		size := int((serialType - 12) / 2)
		blob, rest, err := binreader.ReadBytes(b, size)
		if err != nil {
			return Value{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading blob column", err)
		}
		return Value{Kind: ValueBlob, Blob: append([]byte(nil), blob...)}, rest, nil
	case serialType > 13 && serialType%2 != 0:
		if enc != dbfile.EncodingUTF8 {
			return Value{}, nil, dberrors.New(dberrors.KindUnsupportedEncoding, "text columns are only decoded for UTF-8 databases")
		}
		size := int((serialType - 13) / 2)
		text, rest, err := binreader.ReadBytes(b, size)
		if err != nil {
			return Value{}, nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading text column", err)
		}
		return Value{Kind: ValueText, Text: string(text)}, rest, nil
	default:
		return Value{}, nil, dberrors.New(dberrors.KindUnsupportedSerialType, "unsupported record serial type")
	}
}

// decodeRecord decodes a record body (the payload of a table leaf cell):
// a header-size varint, the per-column serial-type varints that fill out
// the rest of the header, and then the column values in order.
func decodeRecord(enc dbfile.TextEncoding, payload []byte) ([]Value, error) {
	headerSize, headerLen, err := binreader.ReadVarint(payload)
	if err != nil {
		return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading record header size", err)
	}
	if int(headerSize) > len(payload) || int(headerSize) < headerLen {
		return nil, dberrors.New(dberrors.KindEndOfInput, "record header size out of bounds")
	}

	serialTypeBytes := payload[headerLen:headerSize]
	var serialTypes []uint64
	for len(serialTypeBytes) > 0 {
		st, n, err := binreader.ReadVarint(serialTypeBytes)
		if err != nil {
			return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading column serial type", err)
		}
		serialTypes = append(serialTypes, st)
		serialTypeBytes = serialTypeBytes[n:]
	}

	rest := payload[headerSize:]
	values := make([]Value, 0, len(serialTypes))
	for _, st := range serialTypes {
		v, next, err := decodeRecordValue(enc, st, rest)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		rest = next
	}

	return values, nil
}
