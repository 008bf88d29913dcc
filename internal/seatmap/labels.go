package seatmap

import "strings"

// MaxRows is the number of physical rows a seat map can address.  Rows
// are single ASCII letters A-Z.
const MaxRows = 26

// MaxColumns is the widest row PreviewGrid will generate.
const MaxColumns = 100

// IndexToRow converts a zero-based row index into its letter (0 -> "A").
// Indexes outside 0..25 yield the empty string.
func IndexToRow(i int) string {
	if i < 0 || i >= MaxRows {
		return ""
	}
	return string(rune('A' + i))
}

// RowIndex converts a row letter into its zero-based index.  The label is
// trimmed and upper-cased first; anything but a single letter A-Z is
// rejected.
func RowIndex(label string) (int, bool) {
	s := NormalizeRow(label)
	if len(s) != 1 {
		return -1, false
	}
	ch := s[0]
	if ch < 'A' || ch > 'Z' {
		return -1, false
	}
	return int(ch - 'A'), true
}

// NormalizeRow trims surrounding whitespace and upper-cases a row label.
func NormalizeRow(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// higherRow orders labels by length then lexically, so "Z" < "AA".
func higherRow(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
