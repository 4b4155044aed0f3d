package matcher

import (
	"fmt"
	"strings"

	"github.com/404wolf/mdvalidate/internal/walk"
	"github.com/yuin/goldmark/ast"
)

// MultipleMatchersError is returned by Scan when an atomic schema node
// (a single paragraph, heading, or list-item line) carries more than one
// active matcher directive -- spec §4.1's "at most one matcher directive
// per atomic node" invariant.
type MultipleMatchersError struct {
	Node walk.Kind
	N    int
}

func (e *MultipleMatchersError) Error() string {
	return fmt.Sprintf("%s contains %d matcher directives, at most one is allowed", e.Node, e.N)
}

// Classification is the result of scanning one atomic schema node: either a
// single active matcher directive, or pure literal content (render via
// Literal).
type Classification struct {
	Directive *Directive
	Literal   func() string
}

// span is a directive-shaped code span found while scanning a node, whether
// or not it ends up escaped back to literal.
type span struct {
	node        ast.Node
	core        directiveCore
	suffix      suffixResult
	sibling     ast.Node // the Text node the suffix was read from, if any
	siblingText string
}

// Scan classifies cur, an atomic schema node (paragraph, heading, or a
// list-item's own content excluding any nested list), per spec §4.1. It
// never descends into nested List nodes: those are separate structural
// children owned by the List Validator.
func Scan(cur *walk.Cursor) (*Classification, error) {
	spans := collectSpans(cur.Node(), cur.Source())

	active := make([]span, 0, 1)
	for _, sp := range spans {
		if sp.suffix.escapeLevel == 0 {
			active = append(active, sp)
		}
	}

	if len(active) > 1 {
		return nil, &MultipleMatchersError{Node: cur.Kind(), N: len(active)}
	}

	if len(active) == 1 {
		sp := active[0]
		d := &Directive{
			Label:       sp.core.label,
			Kind:        sp.core.kind,
			RegexSource: sp.core.regexSource,
			Optional:    sp.suffix.optional,
			Count:       sp.suffix.count,
			Depth:       sp.suffix.depth,
		}
		return &Classification{Directive: d}, nil
	}

	node, source := cur.Node(), cur.Source()
	return &Classification{
		Literal: func() string {
			return renderLiteral(node, source, spans)
		},
	}, nil
}

// collectSpans finds every directive-shaped code span under n, in document
// order, skipping nested lists.
func collectSpans(n ast.Node, source []byte) []span {
	var out []span
	var walkFn func(ast.Node)
	walkFn = func(cur ast.Node) {
		for c := cur.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Kind() == ast.KindList {
				continue
			}
			if c.Kind() == ast.KindCodeSpan {
				content := walk.RawCodeSpanText(c, source)
				if core, ok := parseCore(content); ok {
					sibling := c.NextSibling()
					siblingText := ""
					if sibling != nil && sibling.Kind() == ast.KindText {
						siblingText = walk.FlattenText(sibling, source)
					}
					suf := parseSuffix(siblingText)
					out = append(out, span{
						node: c, core: core, suffix: suf,
						sibling: sibling, siblingText: siblingText,
					})
				}
			}
			walkFn(c)
		}
	}
	walkFn(n)
	return out
}

// renderLiteral re-flattens n to plain text the way walk.FlattenText does,
// except that escaped directive spans (span.suffix.escapeLevel >= 1) are
// rendered as their raw backtick content (plus a trailing literal "!" for
// escape level 2), and the suffix bytes consumed from their following
// sibling text are dropped rather than included as literal content.
func renderLiteral(n ast.Node, source []byte, spans []span) string {
	byNode := make(map[ast.Node]span, len(spans))
	bySibling := make(map[ast.Node]span, len(spans))
	for _, sp := range spans {
		if sp.suffix.escapeLevel == 0 {
			continue
		}
		byNode[sp.node] = sp
		if sp.sibling != nil {
			bySibling[sp.sibling] = sp
		}
	}

	var b strings.Builder
	var rec func(ast.Node)
	rec = func(cur ast.Node) {
		if sp, ok := byNode[cur]; ok {
			b.WriteString(walk.RawCodeSpanText(cur, source))
			if sp.suffix.escapeLevel == 2 {
				b.WriteByte('!')
			}
			return
		}
		if sp, ok := bySibling[cur]; ok {
			remainder := sp.siblingText
			if sp.suffix.consumed <= len(remainder) {
				remainder = remainder[sp.suffix.consumed:]
			}
			b.WriteString(remainder)
			return
		}

		switch cur.Kind() {
		case ast.KindText:
			t := cur.(*ast.Text)
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
			return
		case ast.KindString:
			b.Write(cur.(*ast.String).Value)
			return
		case ast.KindCodeSpan:
			b.WriteString(walk.RawCodeSpanText(cur, source))
			return
		case ast.KindRawHTML:
			raw := cur.(*ast.RawHTML)
			for i := 0; i < raw.Segments.Len(); i++ {
				b.Write(raw.Segments.At(i).Value(source))
			}
			return
		case ast.KindAutoLink:
			b.Write(cur.(*ast.AutoLink).Value.Value(source))
			return
		}

		for c := cur.FirstChild(); c != nil; c = c.NextSibling() {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}
