// Command hexdump pretty-prints a file or byte range as a hex dump, with
// an optional BLAKE3 digest of the dumped range and an optional
// xz-compressed capture.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/waldgrove/sqlitewal/hexdump"
	"github.com/waldgrove/sqlitewal/internal/logging"
)

var cli struct {
	File   string `arg:"" type:"existingfile" help:"File to dump."`
	Offset int64  `help:"Byte offset to start at." default:"0"`
	Length int64  `help:"Number of bytes to dump; 0 means the rest of the file." default:"0"`
	Digest bool   `help:"Append a BLAKE3 digest of the dumped range."`
	XZ     string `help:"Write an xz-compressed copy of the dumped range to this path."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("hexdump"),
		kong.Description("Pretty-print a byte range as a hex dump."),
		kong.UsageOnError(),
	)

	logger := logging.GetLogger()

	data, err := os.ReadFile(cli.File)
	if err != nil {
		logger.Error("reading file", "error", err)
		os.Exit(1)
	}

	start := cli.Offset
	if start < 0 || start > int64(len(data)) {
		logger.Error("offset out of range")
		os.Exit(1)
	}
	end := int64(len(data))
	if cli.Length > 0 && start+cli.Length < end {
		end = start + cli.Length
	}
	slice := data[start:end]

	if err := hexdump.Dump(os.Stdout, slice, hexdump.Options{Digest: cli.Digest}); err != nil {
		logger.Error("dumping bytes", "error", err)
		os.Exit(1)
	}

	if cli.XZ != "" {
		f, err := os.Create(cli.XZ)
		if err != nil {
			logger.Error("creating xz output", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := hexdump.WriteXZ(f, slice); err != nil {
			logger.Error("writing xz output", "error", err)
			os.Exit(1)
		}
	}
}
