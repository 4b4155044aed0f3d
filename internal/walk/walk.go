// Package walk wraps goldmark's AST in the paired-cursor shape the core
// validator needs: kind/text/parent/sibling/descendant operations over a
// single node plus the source buffer it was parsed from.
//
// Cursor is deliberately thin. It does not mutate the underlying tree and
// holds no state beyond the node it points at and the source it was parsed
// from, so the same Cursor shape serves both the schema tree and the input
// tree.
package walk

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
)

// Kind is a normalized node classification, collapsing goldmark's many
// concrete node types down to the kinds the schema language and the binode
// validator care about (see spec §3's node-kind list).
type Kind string

const (
	KindDocument      Kind = "document"
	KindParagraph     Kind = "paragraph"
	KindHeading       Kind = "heading"
	KindList          Kind = "list"
	KindListItem      Kind = "list_item"
	KindBlockquote    Kind = "blockquote"
	KindCodeBlock     Kind = "code_block"
	KindHTMLBlock     Kind = "html_block"
	KindThematicBreak Kind = "thematic_break"
	KindInlineCode    Kind = "inline_code"
	KindInlineHTML    Kind = "inline_html"
	KindText          Kind = "text"
	KindSoftBreak     Kind = "soft_break"
	KindOther         Kind = "other"
)

// ListKind distinguishes bullet lists from ordered lists (spec §3).
type ListKind string

const (
	ListBullet  ListKind = "bullet"
	ListOrdered ListKind = "ordered"
)

// KindOf classifies a goldmark node into the normalized Kind space.
func KindOf(n ast.Node) Kind {
	switch n.Kind() {
	case ast.KindDocument:
		return KindDocument
	case ast.KindParagraph, ast.KindTextBlock:
		return KindParagraph
	case ast.KindHeading:
		return KindHeading
	case ast.KindList:
		return KindList
	case ast.KindListItem:
		return KindListItem
	case ast.KindBlockquote:
		return KindBlockquote
	case ast.KindCodeBlock, ast.KindFencedCodeBlock:
		return KindCodeBlock
	case ast.KindHTMLBlock:
		return KindHTMLBlock
	case ast.KindThematicBreak:
		return KindThematicBreak
	case ast.KindCodeSpan:
		return KindInlineCode
	case ast.KindRawHTML, ast.KindAutoLink:
		return KindInlineHTML
	case ast.KindText, ast.KindString:
		if isBreakOnlyText(n) {
			return KindSoftBreak
		}
		return KindText
	default:
		return KindOther
	}
}

func isBreakOnlyText(n ast.Node) bool {
	t, ok := n.(*ast.Text)
	if !ok {
		return false
	}
	return t.Segment.Len() == 0 && (t.SoftLineBreak() || t.HardLineBreak())
}

// HeadingLevel returns the heading level (1-6) of a heading node, or 0 if n
// is not a heading.
func HeadingLevel(n ast.Node) int {
	h, ok := n.(*ast.Heading)
	if !ok {
		return 0
	}
	return h.Level
}

// ListOrderedness reports whether a list node is an ordered list. Goldmark
// marks ordered lists with a '.' or ')' delimiter byte; anything else
// (('*', '-', '+') is a bullet list.
func ListOrderedness(n ast.Node) ListKind {
	l, ok := n.(*ast.List)
	if !ok {
		return ListBullet
	}
	if l.Marker == '.' || l.Marker == ')' {
		return ListOrdered
	}
	return ListBullet
}

// CodeBlockLanguage returns the fence info-string language of a fenced code
// block, or "" for an indented code block or any other node.
func CodeBlockLanguage(n ast.Node, source []byte) string {
	f, ok := n.(*ast.FencedCodeBlock)
	if !ok || f.Info == nil {
		return ""
	}
	return string(bytes.TrimSpace(f.Language(source)))
}

// IsWhitespaceOnly reports whether n contributes no structural content: a
// soft/hard line break with no text, or a Text node with an empty segment.
// Binode skips these on both sides per spec §4.4 step 1.
func IsWhitespaceOnly(n ast.Node) bool {
	if KindOf(n) == KindSoftBreak {
		return true
	}
	if n.Kind() == ast.KindText {
		t := n.(*ast.Text)
		return t.Segment.Len() == 0
	}
	return false
}
