// Command merge-wal merges two WAL files into one, rewriting both to a
// freshly generated salt pair so the merged frames agree with the merged
// header. Writes ./out.wal.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/waldgrove/sqlitewal/backfill"
	"github.com/waldgrove/sqlitewal/internal/logging"
	"github.com/waldgrove/sqlitewal/wal"
)

var cli struct {
	First  string `arg:"" type:"existingfile" help:"First WAL file."`
	Second string `arg:"" type:"existingfile" help:"Second WAL file."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("merge-wal"),
		kong.Description("Merge two WAL files into ./out.wal."),
		kong.UsageOnError(),
	)

	logger := logging.GetLogger()

	firstBytes, err := os.ReadFile(cli.First)
	if err != nil {
		logger.Error("reading first wal file", "error", err)
		os.Exit(1)
	}
	secondBytes, err := os.ReadFile(cli.Second)
	if err != nil {
		logger.Error("reading second wal file", "error", err)
		os.Exit(1)
	}

	first, err := wal.Decode(firstBytes)
	if err != nil {
		logger.Error("decoding first wal", "error", err)
		os.Exit(1)
	}
	second, err := wal.Decode(secondBytes)
	if err != nil {
		logger.Error("decoding second wal", "error", err)
		os.Exit(1)
	}

	merged, err := backfill.Merge(first, second)
	if err != nil {
		logger.Error("merging wals", "error", err)
		os.Exit(1)
	}

	out := wal.Encode(merged)
	if err := os.WriteFile("out.wal", out, 0o644); err != nil {
		logger.Error("writing output", "error", err)
		os.Exit(1)
	}
	fmt.Println("out: ./out.wal")
}
