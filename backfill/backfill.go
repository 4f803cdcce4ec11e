// Package backfill reconciles a database with a write-ahead log: applying
// a WAL's frames onto a database's page map, synthesizing a database from
// a header template plus a WAL, and merging two WALs into one.
package backfill

import (
	"github.com/google/uuid"

	"github.com/waldgrove/sqlitewal/dberrors"
	"github.com/waldgrove/sqlitewal/dbfile"
	"github.com/waldgrove/sqlitewal/wal"
)

// Backfill applies every frame of w onto db's page map in order. Page 1
// is special: its frame replaces both the re-decoded header and the full
// page-1 buffer, so a commit that alters the header (e.g. a schema
// change or a vacuum) takes effect. Any other page is replaced if
// present or inserted and counted toward the page total if not.
//
// A commit frame whose DBSizeAfterCommit is smaller than the number of
// pages held in Database.Pages means the transaction shrank the file (a vacuum or
// a DROP TABLE that released trailing pages); this module does not
// truncate Database.Pages itself, since the dropped pages' bytes are
// meaningless rather than wrong. It reports KindTruncationRequired so the
// caller can decide how to shrink the file; db.Header.PageCount is
// already left as whatever the replayed frames set it to, so a caller
// that also removes the excess map entries produces a correctly sized
// file on the next Encode.
func Backfill(db *dbfile.Database, w *wal.WAL) error {
	if db.Header.PageSize != w.Header.PageSize {
		return dberrors.New(dberrors.KindPageSizeMismatch, "wal page size does not match database page size")
	}

	truncationRequired := false

	for _, frame := range w.Frames {
		if len(frame.Page) != int(w.Header.PageSize) {
			return dberrors.New(dberrors.KindOverflow, "wal frame payload size does not match the page size")
		}

		if _, present := db.Pages[frame.PageNumber]; present {
			if frame.PageNumber == 1 {
				newHeader, err := dbfile.DecodeHeader(frame.Page[:dbfile.HeaderSize])
				if err != nil {
					return err
				}
				db.Header = newHeader
			}
			page := make([]byte, len(frame.Page))
			copy(page, frame.Page)
			db.Pages[frame.PageNumber] = page
		} else {
			page := make([]byte, len(frame.Page))
			copy(page, frame.Page)
			db.Pages[frame.PageNumber] = page
			db.Header.PageCount++
		}

		if frame.IsCommit() && frame.DBSizeAfterCommit < uint32(len(db.Pages)) {
			truncationRequired = true
		}
	}

	if truncationRequired {
		return dberrors.New(dberrors.KindTruncationRequired, "a commit frame shrank the database; caller must drop the excess pages")
	}

	return nil
}

// ToDB synthesizes a fresh database from a header template and a WAL: a
// zero-filled page 1 with the header stitched into its first 100 bytes,
// then Backfill applied on top.
func ToDB(header *dbfile.Header, w *wal.WAL) (*dbfile.Database, error) {
	pageSize := int(header.PageSize)
	firstPage := make([]byte, pageSize)
	copy(firstPage[:dbfile.HeaderSize], dbfile.EncodeHeader(header))

	db := &dbfile.Database{
		Header: header,
		Pages:  map[uint32][]byte{1: firstPage},
	}

	if err := Backfill(db, w); err != nil {
		return nil, err
	}
	return db, nil
}

// Merge concatenates a and b's frames into one WAL, rewriting the salts
// of every frame (and the header) in both inputs to a single freshly
// generated pair first. A merged WAL whose frames still carried two
// different salt generations would fail wal.Decode's per-frame salt check.
func Merge(a, b *wal.WAL) (*wal.WAL, error) {
	if a.Header.PageSize != b.Header.PageSize {
		return nil, dberrors.New(dberrors.KindPageSizeMismatch, "cannot merge wals with different page sizes")
	}

	salt1, salt2 := freshSalts()

	merged := &wal.WAL{Header: a.Header}
	merged.Header.Salt1 = salt1
	merged.Header.Salt2 = salt2

	merged.Frames = make([]wal.Frame, 0, len(a.Frames)+len(b.Frames))
	for _, f := range a.Frames {
		f.Salt1, f.Salt2 = salt1, salt2
		merged.Frames = append(merged.Frames, f)
	}
	for _, f := range b.Frames {
		f.Salt1, f.Salt2 = salt1, salt2
		merged.Frames = append(merged.Frames, f)
	}

	return merged, nil
}

// freshSalts derives a new salt pair from a random UUID, reading its first
// 8 bytes as the two big-endian 32-bit words a WAL header carries.
func freshSalts() (uint32, uint32) {
	id := uuid.New()
	b := id[:]
	s1 := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	s2 := uint32(b[4])<<24 | uint32(b[5])<<16 | uint32(b[6])<<8 | uint32(b[7])
	return s1, s2
}
