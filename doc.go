// Package mdvalidate validates a Markdown document against a schema
// written in Markdown itself: headings, paragraphs, and list structure in
// the schema must line up with the input's, while inline-code spans like
// `` `name:/[A-Za-z]+/` `` become matcher directives that capture whatever
// text, number, HTML, or regex-shaped content appears at that position.
//
// Validate walks both documents in lockstep (the Binode Validator, for
// ordinary structure) and expands a schema list's item templates against
// however many input items satisfy their directives' quantifiers (the
// List Validator), producing either a clean Report with captured values or
// a position-anchored set of ValidationErrors.
package mdvalidate
