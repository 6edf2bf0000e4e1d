// Package quoting provides shared string-literal quoting utilities.
package quoting

import "strings"

// EscapeString escapes the body of a single-quoted SQL string literal by
// doubling embedded single quotes. Identifiers are never quoted in this
// dialect, so there is no identifier counterpart.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// SingleQuote wraps s in single quotes, escaping embedded quotes.
func SingleQuote(s string) string {
	return "'" + EscapeString(s) + "'"
}
