package walk

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Position is a (byte offset, line, column) triple into a source buffer.
// Line and column are 1-indexed; column counts UTF-8 runes, not bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Less reports whether p comes strictly before o in the source.
func (p Position) Less(o Position) bool {
	return p.Offset < o.Offset
}

// Zero is the position of the very start of a buffer.
var Zero = Position{Offset: 0, Line: 1, Column: 1}

// OffsetToPosition converts a byte offset into source into a Position by
// scanning for newlines. Called infrequently (diagnostics only), so a linear
// scan is acceptable.
func OffsetToPosition(source []byte, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	line := 1
	col := 1
	last := 0
	for {
		idx := bytes.IndexByte(source[last:offset], '\n')
		if idx < 0 {
			break
		}
		line++
		last += idx + 1
	}
	col = len([]rune(string(source[last:offset]))) + 1
	return Position{Offset: offset, Line: line, Column: col}
}

// firstSegmentOffset returns the byte offset of the first content this node
// (or, failing that, its descendants) contributes, used to anchor a
// Position for nodes without their own Lines().
func firstSegmentOffset(n ast.Node) (int, bool) {
	if lines := blockLines(n); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start, true
	}
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	if cs, ok := n.(*ast.CodeSpan); ok {
		for c := cs.FirstChild(); c != nil; c = c.NextSibling() {
			if off, ok := firstSegmentOffset(c); ok {
				return off, true
			}
		}
	}
	if raw, ok := n.(*ast.RawHTML); ok && raw.Segments.Len() > 0 {
		return raw.Segments.At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := firstSegmentOffset(c); ok {
			return off, true
		}
	}
	return 0, false
}

// blockLines returns the Lines() of n if it is a block node that tracks
// them, or nil otherwise. Separated out so firstSegmentOffset doesn't need
// a type switch over every BaseBlock-embedding concrete type.
func blockLines(n ast.Node) *text.Segments {
	type linesHaver interface {
		Lines() *text.Segments
	}
	if lh, ok := n.(linesHaver); ok {
		return lh.Lines()
	}
	return nil
}
