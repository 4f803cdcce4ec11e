package btree

import (
	"github.com/waldgrove/sqlitewal/dberrors"
	"github.com/waldgrove/sqlitewal/dbfile"
)

// Page is a fully decoded B-tree page: its header and its cells in
// on-page order.
type Page struct {
	Header Header
	Cells  []Cell
}

// DecodeFirstPage decodes page 1, whose B-tree header sits immediately
// after the 100-byte file header. Cell pointers on page 1 are still
// absolute offsets from byte 0 of the page, so they may point anywhere
// in the buffer, including within the first 100 bytes' logical shadow —
// decode always indexes from the full page buffer, never from the
// post-header slice.
func DecodeFirstPage(enc dbfile.TextEncoding, page []byte) (*Page, error) {
	body, err := firstPageBody(page)
	if err != nil {
		return nil, err
	}
	return decodePage(enc, page, body, dbHeaderSize)
}

// Decode decodes a B-tree page whose header starts at byte 0.
func Decode(enc dbfile.TextEncoding, page []byte) (*Page, error) {
	return decodePage(enc, page, page, 0)
}

// decodePage parses the header starting at headerBody (a slice of page
// beginning where the header does) while keeping page itself around for
// the cell pointer array's absolute-offset semantics.
func decodePage(enc dbfile.TextEncoding, page []byte, headerBody []byte, headerOffset int) (*Page, error) {
	h, err := parseHeader(headerBody)
	if err != nil {
		return nil, err
	}

	pointers, err := cellPointers(page, h, headerOffset)
	if err != nil {
		return nil, err
	}

	cells := make([]Cell, 0, len(pointers))
	for _, ptr := range pointers {
		if int(ptr) >= len(page) {
			return nil, dberrors.New(dberrors.KindEndOfInput, "cell pointer points outside the page")
		}
		cell, err := decodeCell(enc, h.PageType, page[ptr:])
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	return &Page{Header: h, Cells: cells}, nil
}
