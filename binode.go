package mdvalidate

import (
	"github.com/404wolf/mdvalidate/internal/capture"
	"github.com/404wolf/mdvalidate/internal/matcher"
	"github.com/404wolf/mdvalidate/internal/pattern"
	"github.com/404wolf/mdvalidate/internal/walk"
)

// attemptState tracks the farthest input position reached during a single
// validation attempt (spec §5): it is monotonic across the whole attempt
// and anchors the errors raised when the input runs out. gotEOF is set
// whenever a sibling sequence or list runs off the end of the input. The
// Top-Level Validator tells "needs more input" from a genuine mismatch by
// the kinds of the errors it receives, not by reading this state.
type attemptState struct {
	farthest Position
	gotEOF   bool
}

func (st *attemptState) advance(p Position) {
	if st.farthest.Less(p) {
		st.farthest = p
	}
}

func structuralSlice(cur *walk.Cursor) []*walk.Cursor {
	var out []*walk.Cursor
	for c := range cur.StructuralChildren() {
		out = append(out, c)
	}
	return out
}

// isAtomicContentKind reports the node kinds the Matcher Parser scans for
// directives: single lines of prose, not container/verbatim nodes.
func isAtomicContentKind(k walk.Kind) bool {
	switch k {
	case walk.KindParagraph, walk.KindHeading:
		return true
	default:
		return false
	}
}

// validateNode validates one schema/input node pair that the caller has
// already paired 1:1 (no quantifier in play at this position). It is the
// Binode Validator's per-node dispatch (spec §4.4).
func validateNode(schema, input *walk.Cursor, st *attemptState, caps *capture.Stack) []*ValidationError {
	if schema.Kind() != input.Kind() {
		st.advance(input.Position())
		return []*ValidationError{NewValidationError(NodeMismatch, input.Position(),
			"expected %s, found %s", schema.Kind(), input.Kind())}
	}

	switch schema.Kind() {
	case walk.KindHeading:
		if schema.HeadingLevel() != input.HeadingLevel() {
			st.advance(input.Position())
			return []*ValidationError{NewValidationError(NodeMismatch, input.Position(),
				"expected heading level %d, found %d", schema.HeadingLevel(), input.HeadingLevel())}
		}
		return validateAtomicContent(schema, input, st, caps)

	case walk.KindParagraph:
		return validateAtomicContent(schema, input, st, caps)

	case walk.KindBlockquote:
		st.advance(input.Position())
		return validateSiblingSequence(structuralSlice(schema), structuralSlice(input), st, caps)

	case walk.KindCodeBlock:
		st.advance(input.Position())
		if schema.CodeBlockLanguage() != input.CodeBlockLanguage() {
			return []*ValidationError{NewValidationError(NodeMismatch, input.Position(),
				"expected code block language %q, found %q", schema.CodeBlockLanguage(), input.CodeBlockLanguage())}
		}
		if schema.Text() != input.Text() {
			return []*ValidationError{NewValidationError(LiteralMismatch, input.Position(),
				"code block contents do not match")}
		}
		return nil

	case walk.KindHTMLBlock:
		st.advance(input.Position())
		if walk.CollapseWhitespace(schema.Text()) != walk.CollapseWhitespace(input.Text()) {
			return []*ValidationError{NewValidationError(LiteralMismatch, input.Position(),
				"HTML block contents do not match")}
		}
		return nil

	case walk.KindThematicBreak:
		st.advance(input.Position())
		return nil

	case walk.KindList:
		return validateList(schema, input, st, caps)

	default:
		st.advance(input.Position())
		return nil
	}
}

// validateAtomicContent handles a single paragraph/heading pair once kinds
// (and, for headings, levels) already line up: either a literal text
// comparison or a single matcher-directive evaluation. It does not apply a
// directive's quantifier -- that's validateSiblingSequence's job, since a
// quantifier spans multiple input siblings, not the inside of one node.
func validateAtomicContent(schema, input *walk.Cursor, st *attemptState, caps *capture.Stack) []*ValidationError {
	st.advance(input.Position())
	cls, err := matcher.Scan(schema)
	if err != nil {
		return []*ValidationError{NewValidationError(MultipleMatchersInNode, schema.Position(), "%s", err)}
	}
	if cls.Directive == nil {
		if walk.CollapseWhitespace(cls.Literal()) != walk.CollapseWhitespace(input.Text()) {
			return []*ValidationError{NewValidationError(LiteralMismatch, input.Position(),
				"expected %q, found %q", walk.CollapseWhitespace(cls.Literal()), walk.CollapseWhitespace(input.Text()))}
		}
		return nil
	}
	return evaluateAndCapture(cls.Directive, input, caps)
}

func evaluateAndCapture(d *matcher.Directive, input *walk.Cursor, caps *capture.Stack) []*ValidationError {
	res, err := pattern.Evaluate(d, input)
	if err != nil {
		return []*ValidationError{NewValidationError(SchemaParseError, input.Position(), "%s", err)}
	}
	if !res.Matched {
		kind := MatcherMismatch
		if d.Kind == matcher.Html && (input.Kind() == walk.KindInlineHTML || input.Kind() == walk.KindHTMLBlock) {
			kind = DepthExceeded
		}
		return []*ValidationError{NewValidationError(kind, input.Position(), "%s", res.Reason)}
	}
	if !d.Suppressed() {
		caps.Top().Record(d.Label, capture.Leaf(input.Text()))
	}
	return nil
}

// validateSiblingSequence is the Binode Validator's sequence-level engine
// (spec §4.4): it walks a run of schema structural siblings against a run
// of input structural siblings, delegating List nodes to the List
// Validator and expanding a matcher-bearing atomic node into its
// `{min,max}` repeated 1:1 matches against consecutive input siblings.
func validateSiblingSequence(schemaSeq, inputSeq []*walk.Cursor, st *attemptState, caps *capture.Stack) []*ValidationError {
	var errs []*ValidationError
	i, j := 0, 0

	for i < len(schemaSeq) {
		sn := schemaSeq[i]

		if sn.Kind() == walk.KindList {
			if j >= len(inputSeq) {
				st.gotEOF = true
				errs = append(errs, NewValidationError(IncompleteInput, st.farthest, "expected a list"))
				i++
				continue
			}
			if inputSeq[j].Kind() != walk.KindList {
				errs = append(errs, NewValidationError(NodeMismatch, inputSeq[j].Position(),
					"expected a list, found %s", inputSeq[j].Kind()))
				i++
				j++
				continue
			}
			errs = append(errs, validateList(sn, inputSeq[j], st, caps)...)
			i++
			j++
			continue
		}

		if isAtomicContentKind(sn.Kind()) {
			cls, err := matcher.Scan(sn)
			if err != nil {
				errs = append(errs, NewValidationError(MultipleMatchersInNode, sn.Position(), "%s", err))
				i++
				continue
			}
			if cls.Directive != nil {
				consumed, qerrs := matchQuantified(cls.Directive, inputSeq, j, st, caps)
				errs = append(errs, qerrs...)
				j += consumed
				i++
				continue
			}
		}

		if j >= len(inputSeq) {
			st.gotEOF = true
			errs = append(errs, NewValidationError(IncompleteInput, st.farthest,
				"expected %s", sn.Kind()))
			i++
			continue
		}

		errs = append(errs, validateNode(sn, inputSeq[j], st, caps)...)
		i++
		j++
	}

	if j < len(inputSeq) {
		st.advance(inputSeq[j].Position())
		errs = append(errs, NewValidationError(NodeMismatch, inputSeq[j].Position(),
			"unexpected extra content (%s)", inputSeq[j].Kind()))
	}

	return errs
}

// matchQuantified repeatedly evaluates directive d against consecutive
// input siblings starting at inputSeq[start], honoring d.Count and
// d.Optional, and reports how many input nodes were consumed plus any
// quantifier errors.
func matchQuantified(d *matcher.Directive, inputSeq []*walk.Cursor, start int, st *attemptState, caps *capture.Stack) (int, []*ValidationError) {
	var errs []*ValidationError
	matched := 0
	j := start

	for {
		if d.Count.Max != nil && matched >= *d.Count.Max {
			break
		}
		if j >= len(inputSeq) {
			st.gotEOF = true
			break
		}
		cand := inputSeq[j]
		res, err := pattern.Evaluate(d, cand)
		if err != nil {
			return j - start, append(errs, NewValidationError(SchemaParseError, cand.Position(), "%s", err))
		}
		if !res.Matched {
			if d.Kind == matcher.Html && (cand.Kind() == walk.KindInlineHTML || cand.Kind() == walk.KindHTMLBlock) {
				errs = append(errs, NewValidationError(DepthExceeded, cand.Position(), "%s", res.Reason))
			}
			break
		}
		st.advance(cand.Position())
		if !d.Suppressed() {
			caps.Top().Record(d.Label, capture.Leaf(cand.Text()))
		}
		matched++
		j++
	}

	min := d.Count.Min
	if d.Optional {
		min = 0
	}
	if matched < min {
		pos := st.farthest
		errs = append(errs, NewValidationError(QuantifierUnderflow, pos,
			"%s requires at least %d match(es), found %d", d, min, matched))
	}
	if d.Count.Max != nil && matched == *d.Count.Max && j < len(inputSeq) {
		if res, err := pattern.Evaluate(d, inputSeq[j]); err == nil && res.Matched {
			errs = append(errs, NewValidationError(QuantifierOverflow, inputSeq[j].Position(),
				"%s allows at most %d match(es)", d, *d.Count.Max))
		}
	}

	return j - start, errs
}
