// Command decode-wal dumps a WAL file's header and frame list.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/waldgrove/sqlitewal/internal/logging"
	"github.com/waldgrove/sqlitewal/wal"
)

var cli struct {
	File string `arg:"" type:"existingfile" help:"WAL file to decode."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("decode-wal"),
		kong.Description("Dump a WAL file's header and frame list."),
		kong.UsageOnError(),
	)

	logger := logging.GetLogger()

	data, err := os.ReadFile(cli.File)
	if err != nil {
		logger.Error("reading wal file", "error", err)
		os.Exit(1)
	}

	w, err := wal.Decode(data)
	if err != nil {
		logger.Error("decoding wal", "error", err)
		os.Exit(1)
	}

	fmt.Printf("page size:       %d\n", w.Header.PageSize)
	fmt.Printf("checkpoint seq:  %d\n", w.Header.CheckpointSeq)
	fmt.Printf("salts:           %d/%d\n", w.Header.Salt1, w.Header.Salt2)
	fmt.Printf("frames:          %d\n", len(w.Frames))
	for i, f := range w.Frames {
		commit := ""
		if f.IsCommit() {
			commit = fmt.Sprintf(" commit(db_size=%d)", f.DBSizeAfterCommit)
		}
		fmt.Printf("  [%d] page=%d%s\n", i, f.PageNumber, commit)
	}
}
