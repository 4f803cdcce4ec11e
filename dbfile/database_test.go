package dbfile

import (
	"testing"

	"github.com/waldgrove/sqlitewal/dberrors"
)

func sampleDatabase(pageCount uint32, pageSize uint32) *Database {
	h := sampleHeader()
	h.PageSize = pageSize
	h.PageCount = pageCount
	pages := make(map[uint32][]byte)
	for i := uint32(1); i <= pageCount; i++ {
		page := make([]byte, pageSize)
		page[0] = byte(i) // distinguish pages for round-trip assertions
		pages[i] = page
	}
	return &Database{Header: h, Pages: pages}
}

func TestDatabaseRoundTrip(t *testing.T) {
	db := sampleDatabase(3, 4096)
	encoded, err := Encode(db)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 3*4096 {
		t.Fatalf("encoded length = %d, want %d", len(encoded), 3*4096)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Header.PageCount != 3 {
		t.Fatalf("page count = %d, want 3", decoded.Header.PageCount)
	}
	for i := uint32(2); i <= 3; i++ {
		if decoded.Pages[i][0] != byte(i) {
			t.Fatalf("page %d marker = %d, want %d", i, decoded.Pages[i][0], i)
		}
	}
}

func TestEncodeMissingPageOne(t *testing.T) {
	db := sampleDatabase(2, 4096)
	delete(db.Pages, 1)

	_, err := Encode(db)
	if err == nil {
		t.Fatal("expected error when page 1 is missing")
	}
	derr, ok := err.(*dberrors.Error)
	if !ok || derr.Kind != dberrors.KindMissingPage {
		t.Fatalf("error = %v, want KindMissingPage", err)
	}
}

func TestEncodeFillsGapPages(t *testing.T) {
	db := sampleDatabase(3, 4096)
	delete(db.Pages, 2)

	encoded, err := Encode(db)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	gap := encoded[4096 : 2*4096]
	for _, b := range gap {
		if b != 0 {
			t.Fatal("gap page was not zero-filled")
		}
	}
}

func TestDecodeTruncatedFile(t *testing.T) {
	db := sampleDatabase(2, 4096)
	encoded, err := Encode(db)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = Decode(encoded[:len(encoded)-10])
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
	derr, ok := err.(*dberrors.Error)
	if !ok || derr.Kind != dberrors.KindTruncatedFile {
		t.Fatalf("error = %v, want KindTruncatedFile", err)
	}
}

func TestEncodeTrustsHeaderPageCountOverMap(t *testing.T) {
	db := sampleDatabase(3, 4096)
	db.Header.PageCount = 2 // simulate a caller truncating only the header

	encoded, err := Encode(db)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 2*4096 {
		t.Fatalf("encoded length = %d, want %d (header page count wins over len(Pages))", len(encoded), 2*4096)
	}
}
