// Package btree decodes individual B-tree pages far enough to read the
// schema table: page headers, cell pointer arrays, and table cells'
// records. Index pages and cell mutation are out of scope: index cells
// decode only as opaque markers (page number / payload size, raw bytes),
// and overflow pages are not followed.
package btree

import (
	"github.com/waldgrove/sqlitewal/binreader"
	"github.com/waldgrove/sqlitewal/dberrors"
	"github.com/waldgrove/sqlitewal/dbfile"
)

// Page type byte values, the first byte of every B-tree page header.
const (
	TypeInteriorIndex byte = 0x02
	TypeInteriorTable byte = 0x05
	TypeLeafIndex     byte = 0x0a
	TypeLeafTable     byte = 0x0d
)

const (
	leafHeaderSize     = 8
	interiorHeaderSize = 12
	dbHeaderSize       = dbfile.HeaderSize
)

// Header is the parsed B-tree page header.
type Header struct {
	PageType         byte
	FirstFreeblock   uint16
	NumCells         uint16
	CellContentStart uint16
	FragmentedBytes  byte
	RightChild       uint32 // interior pages only
}

func isInterior(pageType byte) bool {
	return pageType == TypeInteriorIndex || pageType == TypeInteriorTable
}

func headerSize(pageType byte) int {
	if isInterior(pageType) {
		return interiorHeaderSize
	}
	return leafHeaderSize
}

func validatePageType(t byte) error {
	switch t {
	case TypeInteriorIndex, TypeInteriorTable, TypeLeafIndex, TypeLeafTable:
		return nil
	default:
		return dberrors.New(dberrors.KindUnsupportedPageType, "unrecognised b-tree page type byte")
	}
}

// parseHeader parses the page header starting at the front of data. The
// caller is responsible for slicing off page 1's 100-byte file header
// first — see firstPageBody.
func parseHeader(data []byte) (Header, error) {
	pageType, rest, err := binreader.ReadU8(data)
	if err != nil {
		return Header{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading page type", err)
	}
	if err := validatePageType(pageType); err != nil {
		return Header{}, err
	}

	firstFreeblock, rest, err := binreader.ReadU16(rest)
	if err != nil {
		return Header{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading first freeblock", err)
	}
	numCells, rest, err := binreader.ReadU16(rest)
	if err != nil {
		return Header{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading cell count", err)
	}
	cellContentStart, rest, err := binreader.ReadU16(rest)
	if err != nil {
		return Header{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading cell content start", err)
	}
	fragmentedBytes, rest, err := binreader.ReadU8(rest)
	if err != nil {
		return Header{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading fragmented byte count", err)
	}

	h := Header{
		PageType:         pageType,
		FirstFreeblock:   firstFreeblock,
		NumCells:         numCells,
		CellContentStart: cellContentStart,
		FragmentedBytes:  fragmentedBytes,
	}

	if isInterior(pageType) {
		rightChild, _, err := binreader.ReadU32(rest)
		if err != nil {
			return Header{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading right child pointer", err)
		}
		h.RightChild = rightChild
	}

	return h, nil
}

// firstPageBody strips page 1's 100-byte file header, exposing the B-tree
// header that immediately follows it. The full page buffer is kept by the
// caller for absolute-offset cell pointer seeks.
func firstPageBody(page []byte) ([]byte, error) {
	if len(page) < dbHeaderSize {
		return nil, dberrors.New(dberrors.KindEndOfInput, "page 1 shorter than the file header")
	}
	return page[dbHeaderSize:], nil
}

// cellPointers reads the cell pointer array, which immediately follows
// the page header. Pointers are absolute offsets from the start of the
// page buffer — not from the end of the header — including on page 1,
// where the B-tree header begins at byte 100 but pointers still index
// from byte 0.
func cellPointers(page []byte, h Header, headerOffset int) ([]uint16, error) {
	start := headerOffset + headerSize(h.PageType)
	pointers := make([]uint16, h.NumCells)
	for i := 0; i < int(h.NumCells); i++ {
		off := start + i*2
		if off+2 > len(page) {
			return nil, dberrors.New(dberrors.KindEndOfInput, "cell pointer out of bounds")
		}
		v, _, err := binreader.ReadU16(page[off:])
		if err != nil {
			return nil, dberrors.Wrap(dberrors.KindEndOfInput, "reading cell pointer", err)
		}
		pointers[i] = v
	}
	return pointers, nil
}
