// Command wal-to-db synthesizes a database from a WAL file using a
// fresh-database header template, matching what sqlite3 writes for a
// brand-new file. Writes <wal>.out.db3.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/waldgrove/sqlitewal/backfill"
	"github.com/waldgrove/sqlitewal/dbfile"
	"github.com/waldgrove/sqlitewal/internal/logging"
	"github.com/waldgrove/sqlitewal/wal"
)

var cli struct {
	WAL string `arg:"" type:"existingfile" help:"WAL file to synthesize a database from."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("wal-to-db"),
		kong.Description("Synthesize a database from a WAL file, writing <wal>.out.db3."),
		kong.UsageOnError(),
	)

	logger := logging.GetLogger()

	data, err := os.ReadFile(cli.WAL)
	if err != nil {
		logger.Error("reading wal file", "error", err)
		os.Exit(1)
	}

	w, err := wal.Decode(data)
	if err != nil {
		logger.Error("decoding wal", "error", err)
		os.Exit(1)
	}

	header := &dbfile.Header{
		PageSize:          w.Header.PageSize,
		FileFormatWrite:   2,
		FileFormatRead:    2,
		MaxPayloadFrac:    64,
		MinPayloadFrac:    32,
		LeafPayloadFrac:   32,
		FileChangeCounter: 1,
		PageCount:         1,
		SchemaCookie:      1,
		SchemaFormat:      4,
		TextEncoding:      dbfile.EncodingUTF8,
		VersionValidFor:   1,
		SQLiteVersion:     3038002,
	}

	db, err := backfill.ToDB(header, w)
	if err != nil {
		logger.Error("synthesizing database", "error", err)
		os.Exit(1)
	}

	out, err := dbfile.Encode(db)
	if err != nil {
		logger.Error("encoding database", "error", err)
		os.Exit(1)
	}

	outPath := cli.WAL + ".out.db3"
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		logger.Error("writing output", "error", err)
		os.Exit(1)
	}
	fmt.Printf("out: %s\n", outPath)
}
