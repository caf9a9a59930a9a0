package markup

import (
	"errors"
	"strings"
)

// ErrHeadingNotFound is returned by FindHeading when no heading line with the
// requested text exists in the document.
var ErrHeadingNotFound = errors.New("heading not found")

// ErrTableNotFound is returned by TransformTable when no header line followed
// by at least one body line exists after the search origin.
var ErrTableNotFound = errors.New("table not found")

// HeadingMatch marks a heading line within a document. End is the offset just
// past the heading line's trailing newline (or len(doc) when the heading is
// the last line); it is the search origin for TransformTable.
type HeadingMatch struct {
	Start int
	End   int
}

// FindHeading scans doc line by line for the first heading line whose text is
// exactly heading. A heading line is "h1."–"h6.", a single space, the literal
// heading text, optional trailing spaces or tabs, then a newline or the end of
// the document. Matching is case-sensitive; the heading text is never treated
// as a pattern, so characters like '|' or '(' carry no special meaning.
func FindHeading(doc, heading string) (HeadingMatch, error) {
	pos := 0
	for pos < len(doc) {
		end := len(doc)
		if nl := strings.IndexByte(doc[pos:], '\n'); nl >= 0 {
			end = pos + nl + 1
		}
		line := strings.TrimSuffix(doc[pos:end], "\n")
		if isHeadingLine(line, heading) {
			return HeadingMatch{Start: pos, End: end}, nil
		}
		pos = end
	}
	return HeadingMatch{}, ErrHeadingNotFound
}

// isHeadingLine reports whether line is a heading line for exactly text.
func isHeadingLine(line, text string) bool {
	if len(line) < 4 || line[0] != 'h' {
		return false
	}
	if line[1] < '1' || line[1] > '6' {
		return false
	}
	if line[2] != '.' || line[3] != ' ' {
		return false
	}
	rest := line[4:]
	if !strings.HasPrefix(rest, text) {
		return false
	}
	return strings.TrimRight(rest[len(text):], " \t\r") == ""
}
