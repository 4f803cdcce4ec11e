// Package hexdump is a debug pretty-printer for raw page or file bytes:
// canonical hex+ASCII columns, an optional BLAKE3 content digest, and an
// optional xz-compressed capture of the dumped range. It is a thin
// collaborator for the cmd/hexdump adapter, not part of the core decode
// path.
package hexdump

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

const bytesPerLine = 16

// Options controls what Dump renders alongside the raw hex.
type Options struct {
	Digest bool // append a BLAKE3 digest of the dumped range
	Color  bool // force ANSI byte-class highlighting; auto-detected if unset
}

// Dump writes a hex+ASCII rendering of b to w, one bytesPerLine-byte row
// per line, prefixed with the byte offset and optionally suffixed with a
// BLAKE3 digest line.
func Dump(w io.Writer, b []byte, opts Options) error {
	color := opts.Color
	if f, ok := w.(*os.File); ok && !opts.Color {
		color = isatty.IsTerminal(f.Fd())
	}

	for off := 0; off < len(b); off += bytesPerLine {
		end := off + bytesPerLine
		if end > len(b) {
			end = len(b)
		}
		line := b[off:end]

		fmt.Fprintf(w, "%08x  ", off)
		for i := 0; i < bytesPerLine; i++ {
			if i < len(line) {
				fmt.Fprintf(w, "%s ", hexByte(line[i], color))
			} else {
				fmt.Fprint(w, "   ")
			}
			if i == 7 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintf(w, " |%s|\n", asciiColumn(line))
	}

	if opts.Digest {
		sum := blake3.Sum256(b)
		fmt.Fprintf(w, "\nblake3  %x  (%s)\n", sum, humanize.Bytes(uint64(len(b))))
	}

	return nil
}

func hexByte(b byte, color bool) string {
	if !color {
		return fmt.Sprintf("%02x", b)
	}
	switch {
	case b == 0x00:
		return fmt.Sprintf("\x1b[2m%02x\x1b[0m", b) // dim: zero byte
	case b >= 0x20 && b < 0x7f:
		return fmt.Sprintf("\x1b[32m%02x\x1b[0m", b) // green: printable ASCII
	default:
		return fmt.Sprintf("%02x", b)
	}
}

func asciiColumn(line []byte) string {
	var sb strings.Builder
	for _, b := range line {
		if b >= 0x20 && b < 0x7f {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// WriteXZ xz-compresses b and writes the result to w, for capturing a
// dump's byte range to disk instead of a terminal.
func WriteXZ(w io.Writer, b []byte) error {
	zw, err := xz.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := zw.Write(b); err != nil {
		return err
	}
	return zw.Close()
}

// Digest returns the BLAKE3 digest of b as used by the --digest flag.
func Digest(b []byte) [32]byte {
	return blake3.Sum256(b)
}
