// Package lexer holds the string-literal unescaping RPAL's string tokens
// need. Tokenizing itself is done by the goparsec combinators embedded in
// pkg/parser/grammar.go (pc.Token/pc.Atom), not by a separate scanning
// pass, so this package's surface is deliberately just the one helper the
// parser actually calls. Escape handling is grounded on the reference
// tokenizer (_examples/original_source/src/lexer/tokenizer.py).
package lexer

import "strings"

// Unquote strips the surrounding single quotes from a raw STRING token's
// text and expands the "\'" escape, leaving other backslash sequences
// (\n \t \r \\ \" ) untouched for the printer to expand at output time
// (spec.md §4.7).
func Unquote(raw string) string {
	inner := strings.TrimPrefix(strings.TrimSuffix(raw, "'"), "'")
	return strings.ReplaceAll(inner, `\'`, `'`)
}
