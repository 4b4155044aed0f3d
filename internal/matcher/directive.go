// Package matcher recognizes schema inline-code spans as matcher
// directives (spec §4.1): it parses a code span's content as
// `label? ":" pattern`, reads the quantifier/depth/escape suffix from the
// immediately following sibling text, and classifies the enclosing
// paragraph/heading/list-item-line node as either a single matcher or pure
// literal content.
package matcher

import "fmt"

// PatternKind is the kind of pattern a directive evaluates (spec §3).
type PatternKind int

const (
	Regex PatternKind = iota
	Text
	Number
	Html
	Ruler
)

func (k PatternKind) String() string {
	switch k {
	case Regex:
		return "regex"
	case Text:
		return "text"
	case Number:
		return "number"
	case Html:
		return "html"
	case Ruler:
		return "ruler"
	default:
		return "unknown"
	}
}

// Count is a (min, max) repetition bound. Max == nil means unbounded.
type Count struct {
	Min int
	Max *int
}

// DefaultCount is the quantifier implied by the absence of any +/{...}
// suffix: match exactly once.
func DefaultCount() Count {
	one := 1
	return Count{Min: 1, Max: &one}
}

// Unbounded reports whether this count has no upper limit.
func (c Count) Unbounded() bool { return c.Max == nil }

// Directive is a fully parsed matcher directive (spec §3's "Matcher
// directive").
type Directive struct {
	Label       string // "" only for an unlabeled ruler
	Kind        PatternKind
	RegexSource string // only meaningful when Kind == Regex
	Optional    bool
	Count       Count
	Depth       *int // nil means unbounded/no depth cap
}

// Suppressed reports whether this directive's captures should be dropped
// (label "_").
func (d *Directive) Suppressed() bool { return d.Label == "_" }

func (d *Directive) String() string {
	label := d.Label
	if label == "" {
		label = "_"
	}
	var pat string
	switch d.Kind {
	case Regex:
		pat = "/" + d.RegexSource + "/"
	default:
		pat = d.Kind.String()
	}
	return fmt.Sprintf("%s:%s", label, pat)
}
