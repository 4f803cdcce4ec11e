package btree

import (
	"github.com/waldgrove/sqlitewal/binreader"
	"github.com/waldgrove/sqlitewal/dberrors"
	"github.com/waldgrove/sqlitewal/dbfile"
)

// CellKind tags which alternative a Cell holds.
type CellKind int

const (
	CellTableLeaf CellKind = iota
	CellTableInterior
	CellIndexLeaf
	CellIndexInterior
)

// Cell is a tagged union over the four cell shapes a B-tree page can
// hold. Only table cells are decoded down to their records; index cells
// decode as opaque markers (their key length and raw bytes), since this
// module never needs to compare index keys.
type Cell struct {
	Kind CellKind

	// Table leaf
	RowID   int64
	Records []Value

	// Table/index interior
	ChildPage uint32

	// Table/index interior also carries RowID (table) or PayloadSize (index)
	// as its separator key; index leaf/interior carry RawPayload instead of
	// decoded records.
	PayloadSize uint64
	RawPayload  []byte
}

func decodeCell(enc dbfile.TextEncoding, pageType byte, cellData []byte) (Cell, error) {
	switch pageType {
	case TypeLeafTable:
		return decodeTableLeafCell(enc, cellData)
	case TypeInteriorTable:
		return decodeTableInteriorCell(cellData)
	case TypeLeafIndex:
		return decodeIndexLeafCell(cellData)
	case TypeInteriorIndex:
		return decodeIndexInteriorCell(cellData)
	default:
		return Cell{}, dberrors.New(dberrors.KindUnsupportedPageType, "unrecognised cell parent page type")
	}
}

func decodeTableLeafCell(enc dbfile.TextEncoding, cellData []byte) (Cell, error) {
	payloadSize, n, err := binreader.ReadVarint(cellData)
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading table leaf cell payload size", err)
	}
	rest := cellData[n:]
	rowid, n, err := binreader.ReadVarint(rest)
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading table leaf cell rowid", err)
	}
	rest = rest[n:]

	// This module assumes no overflow pages: the full payload must be
	// present locally on the page.
	payload, _, err := binreader.ReadBytes(rest, int(payloadSize))
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading table leaf cell payload", err)
	}

	records, err := decodeRecord(enc, payload)
	if err != nil {
		return Cell{}, err
	}

	return Cell{Kind: CellTableLeaf, RowID: int64(rowid), Records: records}, nil
}

func decodeTableInteriorCell(cellData []byte) (Cell, error) {
	childPage, rest, err := binreader.ReadU32(cellData)
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading table interior cell child page", err)
	}
	rowid, _, err := binreader.ReadVarint(rest)
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading table interior cell rowid", err)
	}
	return Cell{Kind: CellTableInterior, ChildPage: childPage, RowID: int64(rowid)}, nil
}

func decodeIndexLeafCell(cellData []byte) (Cell, error) {
	payloadSize, n, err := binreader.ReadVarint(cellData)
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading index leaf cell payload size", err)
	}
	payload, _, err := binreader.ReadBytes(cellData[n:], int(payloadSize))
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading index leaf cell payload", err)
	}
	return Cell{Kind: CellIndexLeaf, PayloadSize: payloadSize, RawPayload: append([]byte(nil), payload...)}, nil
}

func decodeIndexInteriorCell(cellData []byte) (Cell, error) {
	childPage, rest, err := binreader.ReadU32(cellData)
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading index interior cell child page", err)
	}
	payloadSize, n, err := binreader.ReadVarint(rest)
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading index interior cell payload size", err)
	}
	payload, _, err := binreader.ReadBytes(rest[n:], int(payloadSize))
	if err != nil {
		return Cell{}, dberrors.Wrap(dberrors.KindEndOfInput, "reading index interior cell payload", err)
	}
	return Cell{Kind: CellIndexInterior, ChildPage: childPage, PayloadSize: payloadSize, RawPayload: append([]byte(nil), payload...)}, nil
}
