// Package ingest implements the traffic-flight CSV import pipeline: parsing,
// normalization, duplicate removal, partition sequencing and renumbering.
package ingest

import "strings"

// ParseCSV tokenizes raw CSV text into rows of trimmed fields. Fields may be
// delimited with double quotes; a doubled quote inside a quoted field is a
// literal quote. CRLF is normalized by discarding bare carriage returns, byte
// order marks are stripped, and rows whose fields are all empty are dropped.
//
// The parser is deliberately permissive: an unterminated quote absorbs the
// rest of the input into one field instead of failing. Uploaded movement logs
// are frequently hand-edited and a hard error would reject the whole file.
func ParseCSV(raw string) [][]string {
	return parseCSV(raw, false)
}

// ParseCSVLoose behaves like ParseCSV but additionally honors single-quote
// delimited fields, which appear in some exported movement logs.
func ParseCSVLoose(raw string) [][]string {
	return parseCSV(raw, true)
}

func parseCSV(raw string, allowSingleQuote bool) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder

	inQuotes := false
	var quoteChar rune

	isQuote := func(r rune) bool {
		if r == '"' {
			return true
		}
		return allowSingleQuote && r == '\''
	}

	endField := func() {
		row = append(row, cleanField(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		if !rowEmpty(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes:
			if r == quoteChar {
				if i+1 < len(runes) && runes[i+1] == quoteChar {
					// escaped literal quote
					field.WriteRune(r)
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteRune(r)
			}
		case isQuote(r):
			inQuotes = true
			quoteChar = r
		case r == ',':
			endField()
		case r == '\n':
			endRow()
		case r == '\r':
			// discarded, normalizes CRLF
		default:
			field.WriteRune(r)
		}
	}
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

// cleanField trims whitespace and strips byte-order-mark characters.
func cleanField(s string) string {
	s = strings.ReplaceAll(s, "\uFEFF", "")
	return strings.TrimSpace(s)
}

func rowEmpty(row []string) bool {
	for _, field := range row {
		if field != "" {
			return false
		}
	}
	return true
}
