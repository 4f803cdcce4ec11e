// Command resize-page-db rewrites only the page-size header field of a
// database file; it does not migrate any page data to the new size.
// Writes <db>.resized.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/waldgrove/sqlitewal/dbfile"
	"github.com/waldgrove/sqlitewal/internal/logging"
)

var cli struct {
	File     string `arg:"" type:"existingfile" help:"Database file to rewrite the header of."`
	PageSize uint32 `arg:"" help:"New page size to write into the header."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("resize-page-db"),
		kong.Description("Rewrite a database's page-size header field, writing <db>.resized."),
		kong.UsageOnError(),
	)

	logger := logging.GetLogger()

	data, err := os.ReadFile(cli.File)
	if err != nil {
		logger.Error("reading database file", "error", err)
		os.Exit(1)
	}
	if len(data) < dbfile.HeaderSize {
		logger.Error("file shorter than the database header")
		os.Exit(1)
	}

	header, err := dbfile.DecodeHeader(data[:dbfile.HeaderSize])
	if err != nil {
		logger.Error("decoding header", "error", err)
		os.Exit(1)
	}
	header.PageSize = cli.PageSize

	copy(data[:dbfile.HeaderSize], dbfile.EncodeHeader(header))

	outPath := cli.File + ".resized"
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		logger.Error("writing output", "error", err)
		os.Exit(1)
	}
	fmt.Printf("out: %s\n", outPath)
}
