package schema

import (
	"testing"

	"github.com/waldgrove/sqlitewal/binreader"
	"github.com/waldgrove/sqlitewal/dbfile"
)

func putVarint(v uint64) []byte { return binreader.PutVarint(nil, v) }

// encodeTextColumn returns the serial type and bytes for a text column.
func encodeTextColumn(s string) (uint64, []byte) {
	return 13 + uint64(len(s))*2, []byte(s)
}

func encodeSchemaRow(typ, name, tblName string, rootPage uint32, sql string) []byte {
	typST, typB := encodeTextColumn(typ)
	nameST, nameB := encodeTextColumn(name)
	tblST, tblB := encodeTextColumn(tblName)
	rootST := uint64(1) // int8 serial type
	sqlST, sqlB := encodeTextColumn(sql)

	var header []byte
	header = binreader.PutVarint(header, typST)
	header = binreader.PutVarint(header, nameST)
	header = binreader.PutVarint(header, tblST)
	header = binreader.PutVarint(header, rootST)
	header = binreader.PutVarint(header, sqlST)

	headerSizeField := len(header) + 1
	for {
		candidate := binreader.VarintLen(uint64(headerSizeField)) + len(header)
		if candidate == headerSizeField {
			break
		}
		headerSizeField = candidate
	}

	body := putVarint(uint64(headerSizeField))
	body = append(body, header...)
	body = append(body, typB...)
	body = append(body, nameB...)
	body = append(body, tblB...)
	body = append(body, byte(rootPage))
	body = append(body, sqlB...)
	return body
}

func writeU16(page []byte, off int, v uint16) {
	page[off] = byte(v >> 8)
	page[off+1] = byte(v)
}

func buildPage1WithOneTable(pageSize int, tableName string, rootPage uint32, sql string) []byte {
	record := encodeSchemaRow("table", tableName, tableName, rootPage, sql)

	cell := putVarint(uint64(len(record)))
	cell = binreader.PutVarint(cell, 1) // rowid
	cell = append(cell, record...)

	page := make([]byte, pageSize)
	cellStart := pageSize - len(cell)
	copy(page[cellStart:], cell)

	const headerOffset = 100
	page[headerOffset] = 0x0d // leaf table
	writeU16(page, headerOffset+1, 0)
	writeU16(page, headerOffset+3, 1)
	writeU16(page, headerOffset+5, uint16(cellStart))
	page[headerOffset+7] = 0
	writeU16(page, headerOffset+8, uint16(cellStart))

	return page
}

func TestDecodeSchema(t *testing.T) {
	page1 := buildPage1WithOneTable(512, "widgets", 2, "CREATE TABLE widgets (id INTEGER)")

	h := &dbfile.Header{PageSize: 512, PageCount: 2, TextEncoding: dbfile.EncodingUTF8}
	db := &dbfile.Database{Header: h, Pages: map[uint32][]byte{1: page1, 2: make([]byte, 512)}}

	schemas, err := Decode(db)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	entry, ok := schemas["widgets"]
	if !ok {
		t.Fatalf("schemas = %+v, missing \"widgets\" entry", schemas)
	}
	if entry.Kind != KindTable {
		t.Fatalf("kind = %v, want KindTable", entry.Kind)
	}
	if entry.RootPage != 2 {
		t.Fatalf("root page = %d, want 2", entry.RootPage)
	}
	if entry.SQL != "CREATE TABLE widgets (id INTEGER)" {
		t.Fatalf("sql = %q", entry.SQL)
	}
}

func TestListPagesOnLeafRootIsEmpty(t *testing.T) {
	leaf := make([]byte, 512)
	leaf[0] = 0x0d // leaf table, zero cells

	h := &dbfile.Header{PageSize: 512, PageCount: 2, TextEncoding: dbfile.EncodingUTF8}
	db := &dbfile.Database{Header: h, Pages: map[uint32][]byte{1: make([]byte, 512), 2: leaf}}

	ranges, err := ListPages(&Table{Name: "widgets", RootPage: 2}, db)
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	if len(ranges) != 0 {
		t.Fatalf("ranges = %+v, want none for a leaf root", ranges)
	}
}
