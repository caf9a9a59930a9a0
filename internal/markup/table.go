package markup

import (
	"fmt"
	"strings"
)

// Record is the parsed representation of one table row, mapping column names
// to cell values. A row with fewer cells than the table has columns simply
// lacks the trailing keys; it does not carry empty-string placeholders.
type Record map[string]string

func (r Record) clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// TableResult holds the outcome of a TransformTable call: the column order
// parsed from the header line, the post-update records in source row order,
// and the full document with only the table block rewritten.
type TableResult struct {
	Headers     []string
	Records     []Record
	NewDocument string
}

// tableBlock marks the first header+body block found in a span. Offsets are
// relative to the span, and end is one past the last body line, including its
// newline when present.
type tableBlock struct {
	start   int
	end     int
	headers []string
	rows    [][]string
}

// TransformTable finds the first table block in doc at or after origin,
// applies update to each row, and splices the re-rendered block back into the
// document. Everything outside the matched block is returned byte for byte.
//
// update is called once per row in source order with a copy of the parsed
// record; its return value merges into the record, so a partial result (say,
// only a "Status" key) overwrites that column and leaves the rest intact. A
// nil update leaves rows unchanged.
//
// Rendering uses the header line's column order. Keys introduced by update
// that are not table columns stay on the returned records but are not
// rendered; columns missing from a record render as empty cells.
//
// If no header line followed by at least one body line exists after origin,
// the error is ErrTableNotFound and the document is untouched.
func TransformTable(doc string, origin int, update func(Record) Record) (*TableResult, error) {
	if origin < 0 || origin > len(doc) {
		return nil, fmt.Errorf("search origin %d outside document of %d bytes", origin, len(doc))
	}

	span := doc[origin:]
	blk, ok := findTable(span)
	if !ok {
		return nil, ErrTableNotFound
	}

	records := make([]Record, len(blk.rows))
	for i, cells := range blk.rows {
		rec := zipRecord(blk.headers, cells)
		if update != nil {
			for k, v := range update(rec.clone()) {
				rec[k] = v
			}
		}
		records[i] = rec
	}

	trailing := blk.end > 0 && span[blk.end-1] == '\n'
	rendered := renderTable(blk.headers, records, trailing)
	newDoc := doc[:origin+blk.start] + rendered + doc[origin+blk.end:]

	return &TableResult{
		Headers:     blk.headers,
		Records:     records,
		NewDocument: newDoc,
	}, nil
}

// findTable scans span line by line for the first header line that is
// followed by at least one body line. A header line with no rows under it
// does not qualify and scanning continues past it, so a stray "||...||" line
// cannot mask a real table further down. The body run ends at the first line
// that is neither a body line nor an interior blank; blank lines after the
// last row stay outside the match.
func findTable(span string) (tableBlock, bool) {
	var blk tableBlock
	inBody := false

	pos := 0
	for pos < len(span) {
		lineEnd := len(span)
		if nl := strings.IndexByte(span[pos:], '\n'); nl >= 0 {
			lineEnd = pos + nl + 1
		}
		line := strings.TrimRight(strings.TrimSuffix(span[pos:lineEnd], "\n"), " \t\r")

		if !inBody {
			if cells, ok := headerCells(line); ok {
				blk = tableBlock{start: pos, headers: cells}
				inBody = true
			}
			pos = lineEnd
			continue
		}

		if line == "" && len(blk.rows) > 0 {
			// Blank line inside the body run: no record, block not closed.
			pos = lineEnd
			continue
		}

		if cells, ok := bodyCells(line); ok {
			blk.rows = append(blk.rows, cells)
			blk.end = lineEnd
			pos = lineEnd
			continue
		}

		if len(blk.rows) > 0 {
			return blk, true
		}

		// Header without a single row under it. The current line may itself
		// start the real block.
		inBody = false
		if cells, ok := headerCells(line); ok {
			blk = tableBlock{start: pos, headers: cells}
			inBody = true
		}
		pos = lineEnd
	}

	if inBody && len(blk.rows) > 0 {
		return blk, true
	}
	return tableBlock{}, false
}

// headerCells parses a "||a||b||" line, returning nil when the line is not a
// well-formed header.
func headerCells(line string) ([]string, bool) {
	if len(line) < 5 || !strings.HasPrefix(line, "||") || !strings.HasSuffix(line, "||") {
		return nil, false
	}
	cells := splitCells(line)
	if len(cells) == 0 {
		return nil, false
	}
	return cells, true
}

// bodyCells parses a "|a|b|" line. A line opening with a double bar is a
// header, never a body line.
func bodyCells(line string) ([]string, bool) {
	if strings.HasPrefix(line, "||") {
		return nil, false
	}
	if len(line) < 3 || !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
		return nil, false
	}
	cells := splitCells(line)
	if len(cells) == 0 {
		return nil, false
	}
	return cells, true
}

// splitCells splits a table line on the bar character, trims surrounding
// whitespace, and drops empty pieces. Empty cells vanish rather than becoming
// "" entries; zipRecord pairs whatever survives positionally with the column
// names.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// zipRecord pairs cell values with column names positionally. Extra cells
// beyond the header count are dropped.
func zipRecord(headers, cells []string) Record {
	rec := make(Record, len(headers))
	for i, h := range headers {
		if i >= len(cells) {
			break
		}
		rec[h] = cells[i]
	}
	return rec
}

// renderTable emits the block in canonical form: one "||h||h||" header line
// and one "|v|v|" line per record, newline-joined.
func renderTable(headers []string, records []Record, trailingNewline bool) string {
	var b strings.Builder
	b.WriteString("||")
	b.WriteString(strings.Join(headers, "||"))
	b.WriteString("||")
	for _, rec := range records {
		b.WriteByte('\n')
		b.WriteByte('|')
		for _, h := range headers {
			b.WriteString(rec[h])
			b.WriteByte('|')
		}
	}
	if trailingNewline {
		b.WriteByte('\n')
	}
	return b.String()
}
