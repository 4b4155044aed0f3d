package mdvalidate

import (
	"github.com/404wolf/mdvalidate/internal/capture"
	"github.com/404wolf/mdvalidate/internal/matcher"
	"github.com/404wolf/mdvalidate/internal/pattern"
	"github.com/404wolf/mdvalidate/internal/walk"
)

// itemContent returns a list item's own leading content node (typically a
// paragraph), ignoring any nested list that follows it.
func itemContent(item *walk.Cursor) (*walk.Cursor, bool) {
	children := structuralSlice(item)
	if len(children) == 0 {
		return nil, false
	}
	return children[0], true
}

// itemRest returns a list item's structural children after its leading
// content -- ordinarily empty, or a single nested List.
func itemRest(item *walk.Cursor) []*walk.Cursor {
	children := structuralSlice(item)
	if len(children) <= 1 {
		return nil
	}
	return children[1:]
}

// nestedListDepth reports how many levels of nested lists item's own
// sublists (itemRest(item)) actually reach, counting item's immediate
// sublist as depth 1. A schema directive's `dN` suffix caps this against
// the candidate input item a quantified schema item is about to accept
// (spec §4.5).
func nestedListDepth(item *walk.Cursor) int {
	max := 0
	for _, child := range itemRest(item) {
		if child.Kind() != walk.KindList {
			continue
		}
		for sub := range child.StructuralChildren() {
			if d := 1 + nestedListDepth(sub); d > max {
				max = d
			}
		}
	}
	return max
}

// validateList is the List Validator (spec §4.5): it matches a schema
// list's template items against an input list's actual items, expanding
// quantified items (`{min,max}`, `+`, `?`) across however many consecutive
// input items satisfy the item's own directive, and recursing into each
// matched item's nested list (if any) via validateSiblingSequence. It
// looks only one candidate item ahead to decide "does the run continue or
// stop" -- deliberately not a full combinatorial backtracking search, the
// same single-token-lookahead strategy the Binode Validator's
// matchQuantified uses.
func validateList(schema, input *walk.Cursor, st *attemptState, caps *capture.Stack) []*ValidationError {
	st.advance(input.Position())
	var errs []*ValidationError

	if schema.ListKind() != input.ListKind() {
		errs = append(errs, NewValidationError(NodeMismatch, input.Position(),
			"expected a %s list, found a %s list", schema.ListKind(), input.ListKind()))
	}

	schemaItems := structuralSlice(schema)
	inputItems := structuralSlice(input)
	i, j := 0, 0

	for i < len(schemaItems) {
		item := schemaItems[i]
		content, hasContent := itemContent(item)
		if !hasContent {
			i++
			continue
		}

		cls, err := matcher.Scan(content)
		if err != nil {
			errs = append(errs, NewValidationError(MultipleMatchersInNode, content.Position(), "%s", err))
			i++
			continue
		}

		if cls.Directive != nil {
			consumed, qerrs := matchQuantifiedItems(item, cls.Directive, inputItems, j, st, caps)
			errs = append(errs, qerrs...)
			j += consumed
			i++
			continue
		}

		if j >= len(inputItems) {
			st.gotEOF = true
			errs = append(errs, NewValidationError(IncompleteInput, st.farthest, "expected another list item"))
			i++
			continue
		}
		errs = append(errs, validateLiteralItem(content, item, inputItems[j], st, caps)...)
		i++
		j++
	}

	if j < len(inputItems) {
		st.advance(inputItems[j].Position())
		errs = append(errs, NewValidationError(NodeMismatch, inputItems[j].Position(), "unexpected extra list item"))
	}

	return errs
}

// validateLiteralItem matches a non-directive schema item against exactly
// one input item: its leading content literally, then its nested list (if
// any) structurally.
func validateLiteralItem(content, schemaItem, inputItem *walk.Cursor, st *attemptState, caps *capture.Stack) []*ValidationError {
	var errs []*ValidationError
	candContent, ok := itemContent(inputItem)
	if !ok {
		st.advance(inputItem.Position())
		return append(errs, NewValidationError(NodeMismatch, inputItem.Position(), "expected a non-empty list item"))
	}
	st.advance(candContent.Position())

	if content.Kind() != candContent.Kind() {
		errs = append(errs, NewValidationError(NodeMismatch, candContent.Position(),
			"expected %s, found %s", content.Kind(), candContent.Kind()))
	} else if walk.CollapseWhitespace(content.Text()) != walk.CollapseWhitespace(candContent.Text()) {
		errs = append(errs, NewValidationError(LiteralMismatch, candContent.Position(),
			"expected %q, found %q", walk.CollapseWhitespace(content.Text()), walk.CollapseWhitespace(candContent.Text())))
	}

	errs = append(errs, validateSiblingSequence(itemRest(schemaItem), itemRest(inputItem), st, caps)...)
	return errs
}

// matchQuantifiedItems repeats a directive-bearing schema item against
// consecutive input items, recursing into each matched item's nested list.
// Its captures land in the enclosing scope under the directive's label as
// an array with one entry per matched item: a string for an item without a
// sublist, an object for an item that opens one.
func matchQuantifiedItems(schemaItem *walk.Cursor, d *matcher.Directive, inputItems []*walk.Cursor, start int, st *attemptState, caps *capture.Stack) (int, []*ValidationError) {
	var errs []*ValidationError
	matched := 0
	j := start

	for {
		if d.Count.Max != nil && matched >= *d.Count.Max {
			break
		}
		if j >= len(inputItems) {
			st.gotEOF = true
			break
		}
		cand := inputItems[j]
		candContent, ok := itemContent(cand)
		if !ok {
			break
		}
		res, err := pattern.Evaluate(d, candContent)
		if err != nil {
			return j - start, append(errs, NewValidationError(SchemaParseError, candContent.Position(), "%s", err))
		}
		if !res.Matched {
			break
		}

		// A dN suffix caps how deep the candidate's own nested lists are
		// allowed to reach; exceeding it aborts this whole alternative --
		// the candidate is rejected outright, the same as a pattern
		// mismatch, rather than accepted with a truncated capture.
		if d.Depth != nil {
			if depth := nestedListDepth(cand); depth > *d.Depth {
				errs = append(errs, NewValidationError(DepthExceeded, candContent.Position(),
					"%s allows nesting depth at most %d, found %d", d, *d.Depth, depth))
				break
			}
		}
		st.advance(candContent.Position())

		rest := itemRest(schemaItem)
		caps.Push()
		if !d.Suppressed() {
			caps.Top().Record(d.Label, capture.Leaf(candContent.Text()))
		}
		subErrs := validateSiblingSequence(rest, itemRest(cand), st, caps)
		if len(subErrs) > 0 {
			// This candidate's sublist didn't validate: the whole
			// alternative fails, so its scope -- including the scalar
			// capture just recorded above -- rolls back rather than
			// committing a capture for an item that didn't actually
			// match (spec §3 invariant 3, §4.6).
			caps.Discard()
			break
		}

		// A schema item with no nested list has only its own scalar
		// capture, which flattens straight into the enclosing scope (a
		// directive repeated across items promotes to an array there, per
		// internal/capture.Scope.Record). A schema item that also opens a
		// sublist nests instead: its own matched value plus its sublists'
		// captures form one object, appended under its own label, so
		// repeated matches become an array of objects (spec §4.5) rather
		// than interleaving their sublist arrays flat into the parent. A
		// single match is wrapped into a one-element array after the loop.
		mergeLabel := ""
		if len(rest) > 0 && !d.Suppressed() {
			mergeLabel = d.Label
		}
		caps.MergeInto(mergeLabel)

		matched++
		j++
	}

	if matched > 0 && !d.Suppressed() && d.Label != "" {
		if v := caps.Top().Value().Object.Get(d.Label); v != nil && v.Array == nil {
			single := *v
			*v = capture.Value{Array: []*capture.Value{&single}}
		}
	}

	min := d.Count.Min
	if d.Optional {
		min = 0
	}
	if matched < min {
		errs = append(errs, NewValidationError(QuantifierUnderflow, st.farthest,
			"%s requires at least %d list item(s), found %d", d, min, matched))
	}
	if d.Count.Max != nil && matched == *d.Count.Max && j < len(inputItems) {
		if candContent, ok := itemContent(inputItems[j]); ok {
			if res, err := pattern.Evaluate(d, candContent); err == nil && res.Matched {
				errs = append(errs, NewValidationError(QuantifierOverflow, candContent.Position(),
					"%s allows at most %d list item(s)", d, *d.Count.Max))
			}
		}
	}

	return j - start, errs
}
