package hexdump

import (
	"bytes"
	"strings"
	"testing"
)

func TestDumpRendersOffsetAndASCII(t *testing.T) {
	var buf bytes.Buffer
	data := []byte("Hello, world!!!!")

	if err := Dump(&buf, data, Options{}); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "00000000") {
		t.Fatalf("output does not start with offset: %q", out)
	}
	if !strings.Contains(out, "|Hello, world!!!!|") {
		t.Fatalf("output missing ascii column: %q", out)
	}
}

func TestDumpWithDigestAppendsBlake3Line(t *testing.T) {
	var buf bytes.Buffer
	data := []byte("page content")

	if err := Dump(&buf, data, Options{Digest: true}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(buf.String(), "blake3") {
		t.Fatal("expected a blake3 digest line when Digest is set")
	}
}

func TestDigestIsStable(t *testing.T) {
	data := []byte("same input")
	if Digest(data) != Digest(data) {
		t.Fatal("Digest should be deterministic for the same input")
	}
}

func TestWriteXZProducesNonEmptyOutput(t *testing.T) {
	var buf bytes.Buffer
	data := []byte(strings.Repeat("compress me\n", 100))

	if err := WriteXZ(&buf, data); err != nil {
		t.Fatalf("WriteXZ: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty compressed output")
	}
}
