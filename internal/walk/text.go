package walk

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// FlattenText renders a node's content back to plain text by walking its
// inline children, the way a terminal renderer would: text segments are
// concatenated, soft breaks become a single space, emphasis/link wrapper
// nodes contribute only their children's text. Code blocks and HTML blocks
// have no inline children and contribute their raw source lines instead.
// It is used for whitespace
// collapsing comparisons (literal path) and as the Pattern Engine's input
// (matcher path); both need "what a reader would see", not the raw source
// bytes including `**`/`_`/`[...]()` markup.
func FlattenText(n ast.Node, source []byte) string {
	var b strings.Builder
	flatten(n, source, &b)
	return b.String()
}

func flatten(n ast.Node, source []byte, b *strings.Builder) {
	switch n.Kind() {
	case ast.KindText:
		t := n.(*ast.Text)
		b.Write(t.Segment.Value(source))
		if t.SoftLineBreak() || t.HardLineBreak() {
			b.WriteByte(' ')
		}
		return
	case ast.KindString:
		b.Write(n.(*ast.String).Value)
		return
	case ast.KindCodeSpan:
		b.WriteString(RawCodeSpanText(n, source))
		return
	case ast.KindRawHTML:
		raw := n.(*ast.RawHTML)
		for i := 0; i < raw.Segments.Len(); i++ {
			seg := raw.Segments.At(i)
			b.Write(seg.Value(source))
		}
		return
	case ast.KindAutoLink:
		al := n.(*ast.AutoLink)
		b.Write(al.Value.Value(source))
		return
	case ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindHTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		if hb, ok := n.(*ast.HTMLBlock); ok && hb.HasClosure() {
			b.Write(hb.ClosureLine.Value(source))
		}
		return
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		flatten(c, source, b)
	}
}

// RawCodeSpanText returns the literal content of an inline code span,
// exactly as written between backticks (no trimming, no escape processing --
// CodeSpan children are marked raw by goldmark).
func RawCodeSpanText(n ast.Node, source []byte) string {
	cs, ok := n.(*ast.CodeSpan)
	if !ok {
		return ""
	}
	var b strings.Builder
	for c := cs.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		b.Write(t.Segment.Value(source))
		if t.SoftLineBreak() || t.HardLineBreak() {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// CollapseWhitespace implements spec §4.4 step 4: whitespace runs collapse
// to a single space, and the result is trimmed.
func CollapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// HTMLElementDepth counts the maximum nesting depth of HTML elements in raw
// HTML text, per SPEC_FULL.md's Open Question decision: depth counts
// elements, not characters. A naive stack walk over "<" ... ">" tokens is
// sufficient here -- this operates on a single input node's raw HTML text,
// never on markup straddling multiple nodes.
func HTMLElementDepth(htmlText string) int {
	depth, maxDepth := 0, 0
	i := 0
	for i < len(htmlText) {
		start := strings.IndexByte(htmlText[i:], '<')
		if start < 0 {
			break
		}
		start += i
		end := strings.IndexByte(htmlText[start:], '>')
		if end < 0 {
			break
		}
		end += start
		tag := htmlText[start+1 : end]
		i = end + 1

		switch {
		case strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "?"):
			continue
		case strings.HasPrefix(tag, "/"):
			if depth > 0 {
				depth--
			}
		case strings.HasSuffix(tag, "/"):
			// self-closing: momentary, doesn't persist as nesting.
			if depth+1 > maxDepth {
				maxDepth = depth + 1
			}
		case isVoidTag(tag):
			if depth+1 > maxDepth {
				maxDepth = depth + 1
			}
		default:
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		}
	}
	return maxDepth
}

var voidTags = map[string]bool{
	"br": true, "img": true, "hr": true, "input": true, "meta": true,
	"link": true, "area": true, "base": true, "col": true, "embed": true,
	"source": true, "track": true, "wbr": true,
}

func isVoidTag(tag string) bool {
	name := tag
	if i := strings.IndexAny(tag, " \t\n"); i >= 0 {
		name = tag[:i]
	}
	return voidTags[strings.ToLower(name)]
}
