// Command backfill-db-from-wal applies a WAL file onto a database file
// and writes the result alongside the input database.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/waldgrove/sqlitewal/backfill"
	"github.com/waldgrove/sqlitewal/dberrors"
	"github.com/waldgrove/sqlitewal/dbfile"
	"github.com/waldgrove/sqlitewal/internal/logging"
	"github.com/waldgrove/sqlitewal/wal"
)

var cli struct {
	DB  string `arg:"" type:"existingfile" help:"Database file to backfill."`
	WAL string `arg:"" type:"existingfile" help:"WAL file to apply."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("backfill-db-from-wal"),
		kong.Description("Apply a WAL onto a database file, writing <db>.out.db3."),
		kong.UsageOnError(),
	)

	logger := logging.GetLogger()

	dbBytes, err := os.ReadFile(cli.DB)
	if err != nil {
		logger.Error("reading database file", "error", err)
		os.Exit(1)
	}
	walBytes, err := os.ReadFile(cli.WAL)
	if err != nil {
		logger.Error("reading wal file", "error", err)
		os.Exit(1)
	}

	db, err := dbfile.Decode(dbBytes)
	if err != nil {
		logger.Error("decoding database", "error", err)
		os.Exit(1)
	}
	w, err := wal.Decode(walBytes)
	if err != nil {
		logger.Error("decoding wal", "error", err)
		os.Exit(1)
	}

	if err := backfill.Backfill(db, w); err != nil {
		if derr, ok := err.(*dberrors.Error); ok && derr.Kind == dberrors.KindTruncationRequired {
			logger.Warn("wal shrinks the database; writing without truncating the page map", "error", err)
		} else {
			logger.Error("backfilling database", "error", err)
			os.Exit(1)
		}
	}

	out, err := dbfile.Encode(db)
	if err != nil {
		logger.Error("encoding database", "error", err)
		os.Exit(1)
	}

	outPath := strings.TrimSuffix(cli.DB, ".db3") + ".out.db3"
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		logger.Error("writing output", "error", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", outPath)
}
