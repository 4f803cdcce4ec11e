// Package sqlsplit splits a SQL script into individual statements with a
// character-level scanner, rather than a grammar: its only job is finding
// statement boundaries, and it special-cases CREATE TRIGGER ... BEGIN ...
// END; bodies so the semicolons inside a trigger body don't end the
// statement early.
package sqlsplit

import "strings"

type state int

const (
	stateNormal state = iota
	stateAtSeparator
	stateInBegin
)

// Split splits input into statements, each one still carrying its
// trailing semicolon (except possibly the last, if the input doesn't end
// with one).
func Split(input string) []string {
	var out []string
	st := stateNormal
	var buf strings.Builder

	for _, r := range input {
		switch st {
		case stateAtSeparator:
			if r == ' ' || r == '\n' {
				continue
			}
			st = stateNormal
			buf.WriteRune(r)

		case stateNormal:
			buf.WriteRune(r)
			if r == ' ' && strings.HasSuffix(buf.String(), "BEGIN ") {
				st = stateInBegin
			}
			if r == ';' {
				st = stateAtSeparator
				out = append(out, buf.String())
				buf.Reset()
			}

		case stateInBegin:
			buf.WriteRune(r)
			if r == ';' && strings.HasSuffix(buf.String(), "END;") {
				st = stateAtSeparator
				out = append(out, buf.String())
				buf.Reset()
			}
		}
	}

	if buf.Len() > 0 {
		out = append(out, buf.String())
	}

	return out
}
