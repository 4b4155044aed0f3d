// Package pattern evaluates a matcher directive's pattern kind (spec §4.2)
// against a single piece of already-flattened node text: Regex via
// dlclark/regexp2, Text/Number via fixed grammars, Html via a node-kind
// check plus element-depth capping, Ruler via a node-kind check.
package pattern

import (
	"fmt"
	"strings"

	"github.com/404wolf/mdvalidate/internal/matcher"
	"github.com/404wolf/mdvalidate/internal/walk"
	"github.com/dlclark/regexp2"
)

// Result is the outcome of evaluating a pattern against one node.
type Result struct {
	Matched bool
	Reason  string // populated when Matched is false, for MatcherMismatch rendering
}

func fail(reason string) Result { return Result{Matched: false, Reason: reason} }
func ok() Result                { return Result{Matched: true} }

// Evaluate checks whether cur's text (or, for Html/Ruler, cur's structure)
// satisfies d. The text is read through walk.Cursor.Text(): trimmed for
// Regex/Text/Number, used as raw HTML text for Html.
func Evaluate(d *matcher.Directive, cur *walk.Cursor) (Result, error) {
	switch d.Kind {
	case matcher.Regex:
		return evaluateRegex(d, cur)
	case matcher.Text:
		return evaluateText(cur)
	case matcher.Number:
		return evaluateNumber(cur)
	case matcher.Html:
		return evaluateHTML(d, cur)
	case matcher.Ruler:
		return evaluateRuler(cur)
	default:
		return Result{}, fmt.Errorf("pattern: unknown kind %v", d.Kind)
	}
}

// compileRegex anchors the directive's source to match the whole candidate
// string, the way an embedded matcher is meant to: partial matches (a
// directive matching only a substring of the node's text) are not matches.
// regexp2 has no single-flag equivalent of Go's implicit `^...$` anchoring
// for arbitrary patterns containing alternation, so the anchor is applied
// textually with a non-capturing group.
func compileRegex(source string) (*regexp2.Regexp, error) {
	anchored := `\A(?:` + source + `)\z`
	re, err := regexp2.Compile(anchored, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("pattern: invalid regex %q: %w", source, err)
	}
	return re, nil
}

func evaluateRegex(d *matcher.Directive, cur *walk.Cursor) (Result, error) {
	re, err := compileRegex(d.RegexSource)
	if err != nil {
		return Result{}, err
	}
	candidate := strings.TrimSpace(cur.Text())
	m, err := re.MatchString(candidate)
	if err != nil {
		return Result{}, fmt.Errorf("pattern: regex evaluation failed: %w", err)
	}
	if !m {
		return fail(fmt.Sprintf("text %q does not match /%s/", candidate, d.RegexSource)), nil
	}
	return ok(), nil
}

func evaluateText(cur *walk.Cursor) (Result, error) {
	candidate := strings.TrimSpace(cur.Text())
	if candidate == "" {
		return fail("text pattern requires non-empty content"), nil
	}
	return ok(), nil
}

func evaluateNumber(cur *walk.Cursor) (Result, error) {
	candidate := strings.TrimSpace(cur.Text())
	if !isNumber(candidate) {
		return fail(fmt.Sprintf("%q is not a number", candidate)), nil
	}
	return ok(), nil
}

// isNumber matches `-?\d+(\.\d+)?`.
func isNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && isASCIIDigit(s[i]) {
		i++
	}
	if i == start {
		return false
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' {
		return false
	}
	i++
	fracStart := i
	for i < len(s) && isASCIIDigit(s[i]) {
		i++
	}
	return i == len(s) && i > fracStart
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func evaluateHTML(d *matcher.Directive, cur *walk.Cursor) (Result, error) {
	if cur.Kind() != walk.KindInlineHTML && cur.Kind() != walk.KindHTMLBlock {
		return fail("expected raw HTML content"), nil
	}
	raw := cur.Text()
	if d.Depth != nil && *d.Depth != 0 {
		depth := walk.HTMLElementDepth(raw)
		if depth > *d.Depth {
			return fail(fmt.Sprintf("HTML nesting depth %d exceeds cap %d", depth, *d.Depth)), nil
		}
	}
	return ok(), nil
}

func evaluateRuler(cur *walk.Cursor) (Result, error) {
	if cur.Kind() != walk.KindThematicBreak {
		return fail("expected a thematic break"), nil
	}
	return ok(), nil
}
