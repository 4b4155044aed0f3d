package walk

import (
	"iter"

	"github.com/yuin/goldmark/ast"
)

// Cursor is a read-only paired-cursor handle into one side (schema or
// input) of a parsed Markdown document: the node it currently points at,
// plus the source buffer it was parsed from. Cursor never mutates the
// underlying tree -- edits happen only when the caller re-parses between
// streaming attempts (spec §5).
type Cursor struct {
	node   ast.Node
	source []byte
}

// NewCursor wraps a goldmark AST node and the source it was parsed from.
func NewCursor(node ast.Node, source []byte) *Cursor {
	return &Cursor{node: node, source: source}
}

// Node returns the underlying goldmark node, for callers (the Matcher
// Parser) that need to inspect node-specific fields goldmark doesn't
// expose generically.
func (c *Cursor) Node() ast.Node { return c.node }

// Source returns the buffer this cursor's node was parsed from.
func (c *Cursor) Source() []byte { return c.source }

// Kind returns the normalized node kind.
func (c *Cursor) Kind() Kind { return KindOf(c.node) }

// HeadingLevel returns this node's heading level, or 0 if it isn't a
// heading.
func (c *Cursor) HeadingLevel() int { return HeadingLevel(c.node) }

// ListKind returns whether this list node is bullet or ordered.
func (c *Cursor) ListKind() ListKind { return ListOrderedness(c.node) }

// CodeBlockLanguage returns this fenced code block's info-string language.
func (c *Cursor) CodeBlockLanguage() string { return CodeBlockLanguage(c.node, c.source) }

// Text returns this node's flattened, rendered text (see FlattenText).
func (c *Cursor) Text() string { return FlattenText(c.node, c.source) }

// RawCodeSpanText returns this inline-code node's literal backtick content.
func (c *Cursor) RawCodeSpanText() string { return RawCodeSpanText(c.node, c.source) }

// IsWhitespaceOnly reports whether this node is structural filler (spec
// §4.4 step 1).
func (c *Cursor) IsWhitespaceOnly() bool { return IsWhitespaceOnly(c.node) }

// Position returns this node's best-effort source position.
func (c *Cursor) Position() Position {
	if off, ok := firstSegmentOffset(c.node); ok {
		return OffsetToPosition(c.source, off)
	}
	return Zero
}

// Parent returns this node's parent cursor, or false at the document root.
func (c *Cursor) Parent() (*Cursor, bool) {
	p := c.node.Parent()
	if p == nil {
		return nil, false
	}
	return &Cursor{node: p, source: c.source}, true
}

// FirstChild returns this node's first child cursor, or false if it has no
// children.
func (c *Cursor) FirstChild() (*Cursor, bool) {
	fc := c.node.FirstChild()
	if fc == nil {
		return nil, false
	}
	return &Cursor{node: fc, source: c.source}, true
}

// NextSibling returns the next sibling cursor, or false if this is the last
// child of its parent.
func (c *Cursor) NextSibling() (*Cursor, bool) {
	ns := c.node.NextSibling()
	if ns == nil {
		return nil, false
	}
	return &Cursor{node: ns, source: c.source}, true
}

// ChildCount returns the number of direct children.
func (c *Cursor) ChildCount() int { return c.node.ChildCount() }

// Children iterates this node's direct children in document order.
func (c *Cursor) Children() iter.Seq[*Cursor] {
	return func(yield func(*Cursor) bool) {
		for n := c.node.FirstChild(); n != nil; n = n.NextSibling() {
			if !yield(&Cursor{node: n, source: c.source}) {
				return
			}
		}
	}
}

// StructuralChildren iterates direct children, skipping whitespace-only
// filler nodes (soft breaks, empty text). Both the Binode Validator and the
// List Validator walk structural children, never raw children, so that a
// line break between list items never counts as a structural mismatch.
func (c *Cursor) StructuralChildren() iter.Seq[*Cursor] {
	return func(yield func(*Cursor) bool) {
		for cur := range c.Children() {
			if cur.IsWhitespaceOnly() {
				continue
			}
			if !yield(cur) {
				return
			}
		}
	}
}

// Descendants iterates every descendant of this node (not itself) in
// pre-order that has the given kind.
func (c *Cursor) Descendants(k Kind) iter.Seq[*Cursor] {
	return func(yield func(*Cursor) bool) {
		var walk func(ast.Node) bool
		walk = func(n ast.Node) bool {
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				if KindOf(child) == k {
					if !yield(&Cursor{node: child, source: c.source}) {
						return false
					}
				}
				if !walk(child) {
					return false
				}
			}
			return true
		}
		walk(c.node)
	}
}
