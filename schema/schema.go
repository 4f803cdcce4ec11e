// Package schema reads the sqlite_schema table on page 1 and walks a
// table's root interior page to list the rowid ranges of its child pages. An Entry per sqlite_schema row, keyed by name.
package schema

import (
	"github.com/waldgrove/sqlitewal/btree"
	"github.com/waldgrove/sqlitewal/dberrors"
	"github.com/waldgrove/sqlitewal/dbfile"
)

// Kind distinguishes the two sqlite_schema row kinds this module reads.
type Kind int

const (
	KindTable Kind = iota
	KindIndex
)

// Entry is one decoded row of the sqlite_schema table.
type Entry struct {
	Kind      Kind
	Name      string
	TableName string
	RootPage  uint32
	SQL       string
}

// Table is the subset of an Entry this package's traversal needs, plus
// the ability to enumerate the rowid ranges its leaf pages cover.
type Table struct {
	Name     string
	RootPage uint32
}

// Schemas indexes sqlite_schema entries by name.
type Schemas map[string]Entry

// Decode reads page 1's leaf cells and builds the sqlite_schema index.
// Columns 0 through 4 of every row are, in order: type, name, tbl_name,
// rootpage, sql.
func Decode(db *dbfile.Database) (Schemas, error) {
	page1, ok := db.Pages[1]
	if !ok {
		return nil, dberrors.New(dberrors.KindMissingPage, "database has no page 1")
	}

	p, err := btree.DecodeFirstPage(db.Header.TextEncoding, page1)
	if err != nil {
		return nil, err
	}

	schemas := make(Schemas)
	for _, cell := range p.Cells {
		if cell.Kind != btree.CellTableLeaf {
			continue
		}
		if len(cell.Records) < 5 {
			return nil, dberrors.New(dberrors.KindEndOfInput, "sqlite_schema row has fewer than 5 columns")
		}

		typeCol := cell.Records[0]
		nameCol := cell.Records[1]
		tblNameCol := cell.Records[2]
		rootPageCol := cell.Records[3]
		sqlCol := cell.Records[4]

		entry := Entry{
			Name:      nullableText(nameCol),
			TableName: nullableText(tblNameCol),
			SQL:       nullableText(sqlCol),
			RootPage:  uint32(recordInt(rootPageCol)),
		}
		if nullableText(typeCol) == "table" {
			entry.Kind = KindTable
		} else {
			entry.Kind = KindIndex
		}

		schemas[entry.Name] = entry
	}

	return schemas, nil
}

func nullableText(v btree.Value) string {
	if v.Kind == btree.ValueText {
		return v.Text
	}
	return ""
}

func recordInt(v btree.Value) int64 {
	switch v.Kind {
	case btree.ValueInt8, btree.ValueInt16:
		return int64(v.Int)
	default:
		return 0
	}
}

// PageRange is one child page's rowid span, as read off an interior cell:
// rows with start < rowid <= end live under Index.
type PageRange struct {
	Start, End int64
	Index      uint32
}

// ListPages walks a table's root page — which must be an interior table
// page for this traversal to produce any range — and returns one rowid
// range per interior cell, in ascending rowid order. The right-most child
// pointer in the page header has no cell and is not listed. Only
// the immediate children of the root are visited; a taller B-tree would
// need recursive descent, which this module does not implement (the
// schema tables this library targets are sized for one level).
func ListPages(t *Table, db *dbfile.Database) ([]PageRange, error) {
	page, ok := db.Pages[t.RootPage]
	if !ok {
		return nil, dberrors.New(dberrors.KindMissingPage, "table root page not present in database")
	}

	var p *btree.Page
	var err error
	if t.RootPage == 1 {
		p, err = btree.DecodeFirstPage(db.Header.TextEncoding, page)
	} else {
		p, err = btree.Decode(db.Header.TextEncoding, page)
	}
	if err != nil {
		return nil, err
	}

	var ranges []PageRange
	var prevRowID int64
	haveStart := false
	for _, cell := range p.Cells {
		if cell.Kind != btree.CellTableInterior {
			continue
		}
		start := int64(0)
		if haveStart {
			start = prevRowID
		}
		ranges = append(ranges, PageRange{Start: start, End: cell.RowID, Index: cell.ChildPage})
		prevRowID = cell.RowID
		haveStart = true
	}

	return ranges, nil
}
