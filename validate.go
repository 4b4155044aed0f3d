package mdvalidate

import (
	"github.com/404wolf/mdvalidate/internal/capture"
	"github.com/404wolf/mdvalidate/internal/walk"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Report is the outcome of validating one input document against one
// schema document (spec §4.7).
type Report struct {
	// OK is true when input fully satisfies schema with no errors.
	OK bool
	// Incomplete is true when input ended before schema was satisfied but
	// nothing observed so far contradicts it -- more streamed input could
	// still make the document valid (spec §5). Incomplete and OK are
	// never both true.
	Incomplete bool
	// Errors is the merged, position-sorted set of hard failures. Empty
	// when OK or Incomplete.
	Errors []*ValidationError
	// Captures holds every matcher directive's captured value, nested to
	// mirror list structure (spec §4.6). Populated even when validation
	// fails, with every capture that succeeded during the walk, including
	// those made after a failing node.
	Captures *CaptureValue
}

// Validate parses schemaSource and inputSource as Markdown and checks
// input against schema (spec §4.4-§4.7). eof reports whether inputSource
// is known to be complete. When eof is false, a validation attempt that
// fails only because input ran out before the schema was satisfied is
// reported as Incomplete rather than as a hard failure, since more
// streamed input could still satisfy the schema (spec §5); once eof is
// true, the same situation is a genuine failure.
func Validate(schemaSource, inputSource []byte, eof bool) *Report {
	md := goldmark.New()
	schemaDoc := md.Parser().Parse(text.NewReader(schemaSource))
	inputDoc := md.Parser().Parse(text.NewReader(inputSource))

	schemaCur := walk.NewCursor(schemaDoc, schemaSource)
	inputCur := walk.NewCursor(inputDoc, inputSource)

	st := &attemptState{}
	caps := capture.NewStack()

	errs := mergeErrors(validateSiblingSequence(structuralSlice(schemaCur), structuralSlice(inputCur), st, caps))

	if len(errs) == 0 {
		return &Report{OK: true, Captures: caps.Root()}
	}

	onlyIncomplete := true
	for _, e := range errs {
		if e.Kind() != IncompleteInput {
			onlyIncomplete = false
			break
		}
	}

	if !eof && onlyIncomplete {
		return &Report{Incomplete: true, Captures: caps.Root()}
	}

	if !eof {
		// Streaming and not yet at EOF: an IncompleteInput entry alongside
		// a genuine mismatch is noise -- the document is already invalid
		// for a reason unrelated to running out of input, so don't also
		// claim it merely needs more.
		filtered := errs[:0]
		for _, e := range errs {
			if e.Kind() != IncompleteInput {
				filtered = append(filtered, e)
			}
		}
		errs = filtered
	}

	return &Report{OK: len(errs) == 0, Errors: errs, Captures: caps.Root()}
}
