package core

// snapshot.go decodes the spreadsheet's CSV export into typed records.
//
// The export is line-delimited with comma-separated fields and optional
// double-quote wrapping per field. This is a strict positional decoder: cells
// are split on the literal delimiter and stripped of surrounding quotes, with
// no escaping support. A field value that itself contains a comma mis-aligns
// that row. The sheet columns never legitimately contain commas, so the
// limitation is documented rather than worked around.

import (
	"fmt"
	"strings"
)

// headerAliases folds the spellings seen in real exports to canonical column
// names. Lookup keys are already trimmed, quote-stripped, and lower-cased.
var headerAliases = map[string]string{
	"expire date": ColExpiry,
	"expiredate":  ColExpiry,
	"expire_date": ColExpiry,
}

// DecodeSnapshot parses CSV snapshot text into a Snapshot. It returns
// ErrMalformedSnapshot when the text contains no non-blank lines. Decoding
// is deterministic: the same text always yields the same record sequence.
func DecodeSnapshot(text string) (Snapshot, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return Snapshot{}, fmt.Errorf("%w: no non-blank lines", ErrMalformedSnapshot)
	}

	headers := splitCells(lines[0])
	for i, h := range headers {
		headers[i] = CanonicalHeader(h)
	}

	records := make([]SubscriberRecord, 0, len(lines)-1)
	for i, line := range lines[1:] {
		cells := splitCells(line)

		fields := make(map[string]string, len(headers))
		for pos, name := range headers {
			// Short rows pad with "", long rows truncate to header length.
			if pos < len(cells) {
				fields[name] = cells[pos]
			} else {
				fields[name] = ""
			}
		}

		records = append(records, SubscriberRecord{
			Fields:   fields,
			RowIndex: i + 1,
		})
	}

	return Snapshot{Headers: headers, Records: records}, nil
}

// CanonicalHeader converts a raw header cell to its canonical column name:
// trimmed, quote-stripped, lower-cased, and alias-folded.
func CanonicalHeader(h string) string {
	h = strings.ToLower(CleanCell(h))
	if canonical, ok := headerAliases[h]; ok {
		return canonical
	}
	return h
}

// splitCells splits one CSV line on the delimiter and cleans each cell.
func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i, c := range cells {
		cells[i] = CleanCell(c)
	}
	return cells
}

// CleanCell trims whitespace (including a trailing \r from CRLF exports) and
// strips literal double-quote characters from a single cell. Quote stripping
// is global, not just surrounding: a quoted field split on an embedded comma
// leaves dangling quote halves in both fragments.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}
