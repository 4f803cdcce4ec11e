// Command decode-db dumps a SQLite database file's header and page map
// summary.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/waldgrove/sqlitewal/dbfile"
	"github.com/waldgrove/sqlitewal/internal/logging"
)

var cli struct {
	File string `arg:"" type:"existingfile" help:"Database file to decode."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("decode-db"),
		kong.Description("Dump a database file's header and page map summary."),
		kong.UsageOnError(),
	)

	logger := logging.GetLogger()

	data, err := os.ReadFile(cli.File)
	if err != nil {
		logger.Error("reading database file", "error", err)
		os.Exit(1)
	}

	db, err := dbfile.Decode(data)
	if err != nil {
		logger.Error("decoding database", "error", err)
		os.Exit(1)
	}

	h := db.Header
	fmt.Printf("page size:        %d\n", h.PageSize)
	fmt.Printf("page count:       %d\n", h.PageCount)
	fmt.Printf("schema cookie:    %d\n", h.SchemaCookie)
	fmt.Printf("text encoding:    %d\n", h.TextEncoding)
	fmt.Printf("file size:        %s\n", humanize.Bytes(uint64(len(data))))
	fmt.Printf("pages decoded:    %d\n", len(db.Pages))
}
