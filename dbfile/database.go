package dbfile

import (
	"github.com/waldgrove/sqlitewal/dberrors"
)

// Database is a decoded main database file: its header plus a dense,
// 1-indexed page map. Pages[1] always includes the 100-byte header region
// at its front, matching how the page is laid out on disk.
type Database struct {
	Header *Header
	Pages  map[uint32][]byte
}

// Decode parses a full database file image: the 100-byte header followed
// by a whole number of fixed-size pages (page 1 includes the header).
func Decode(b []byte) (*Database, error) {
	if len(b) < HeaderSize {
		return nil, dberrors.New(dberrors.KindEndOfInput, "file shorter than header")
	}
	header, err := DecodeHeader(b[:HeaderSize])
	if err != nil {
		return nil, err
	}
	pageSize := int(header.PageSize)
	if pageSize < HeaderSize {
		return nil, dberrors.New(dberrors.KindEndOfInput, "declared page size is smaller than the database header")
	}
	if len(b)%pageSize != 0 {
		return nil, dberrors.New(dberrors.KindTruncatedFile, "file length is not a multiple of the page size")
	}

	pages := make(map[uint32][]byte)
	numPages := len(b) / pageSize
	for i := 0; i < numPages; i++ {
		start := i * pageSize
		end := start + pageSize
		page := make([]byte, pageSize)
		copy(page, b[start:end])
		pages[uint32(i+1)] = page
	}

	return &Database{Header: header, Pages: pages}, nil
}

// Encode serializes a Database back to a full file image. The page count
// written is Header.PageCount, not len(Pages): a caller that wants to
// shrink a database truncates the header field and the corresponding
// entries from Pages before calling Encode.
func Encode(db *Database) ([]byte, error) {
	page1, ok := db.Pages[1]
	if !ok {
		return nil, dberrors.New(dberrors.KindMissingPage, "page 1 is required to encode a database")
	}
	pageSize := int(db.Header.PageSize)
	if len(page1) != pageSize {
		return nil, dberrors.New(dberrors.KindOverflow, "page 1 size does not match header page size")
	}

	out := make([]byte, 0, int(db.Header.PageCount)*pageSize)
	headerBytes := EncodeHeader(db.Header)

	page1Copy := make([]byte, pageSize)
	copy(page1Copy, page1)
	copy(page1Copy[:HeaderSize], headerBytes)
	out = append(out, page1Copy...)

	for i := uint32(2); i <= db.Header.PageCount; i++ {
		page, ok := db.Pages[i]
		if !ok {
			page = make([]byte, pageSize)
		}
		if len(page) != pageSize {
			return nil, dberrors.New(dberrors.KindOverflow, "page size mismatch during encode")
		}
		out = append(out, page...)
	}

	return out, nil
}
