// Command sqlsplit splits a SQL script read from stdin into statements,
// printed one per line as a JSON array.
package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/waldgrove/sqlitewal/internal/logging"
	"github.com/waldgrove/sqlitewal/sqlsplit"
)

var cli struct{}

func main() {
	kong.Parse(&cli,
		kong.Name("sqlsplit"),
		kong.Description("Split a SQL script on stdin into statements, printed as a JSON array."),
		kong.UsageOnError(),
	)

	logger := logging.GetLogger()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		logger.Error("reading stdin", "error", err)
		os.Exit(1)
	}

	statements := sqlsplit.Split(string(input))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(statements); err != nil {
		logger.Error("encoding output", "error", err)
		os.Exit(1)
	}
}
