package mdvalidate

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeCaptures round-trips a Report's captures through JSON into a plain
// map/slice/string tree, the shape google/go-cmp can diff directly without
// needing visibility into capture.Value's unexported fields.
func decodeCaptures(t *testing.T, report *Report) any {
	t.Helper()
	b, err := json.Marshal(report.Captures)
	require.NoError(t, err)
	var v any
	require.NoError(t, json.Unmarshal(b, &v))
	return v
}

func TestValidateLabeledRegexCapture(t *testing.T) {
	schema := "# Greeting\n\n`name:/[A-Za-z]+/`\n"
	input := "# Greeting\n\nWolf\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.True(t, report.OK, "errors: %v", report.Errors)

	b, err := json.Marshal(report.Captures)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Wolf"}`, string(b))
}

func TestValidateLiteralMismatch(t *testing.T) {
	schema := "# Title\n\nExpected copy.\n"
	input := "# Title\n\nSomething else entirely.\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.False(t, report.OK)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, LiteralMismatch, report.Errors[0].Kind())
}

func TestValidateNestedListCapture(t *testing.T) {
	schema := "- `item:text`\n  - `sub:text`+\n"
	input := "- first\n  - a\n  - b\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.True(t, report.OK, "errors: %v", report.Errors)

	// "item" opens a sublist, so its own matched value and "sub"'s
	// captures nest into one object, held in the array under "item"
	// (spec §4.5) even though only a single top-level item matched.
	want := map[string]any{
		"item": []any{map[string]any{"item": "first", "sub": []any{"a", "b"}}},
	}
	if diff := cmp.Diff(want, decodeCaptures(t, report)); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateNestedListCaptureRepeatedItemsGroupAsObjects(t *testing.T) {
	schema := "- `item:/[A-Z][a-z]+/`{2,2}\n  - `note:/\\w+/`{,2}\n"
	input := "- Apples\n  - organic\n  - local\n- Bananas\n  - ripe\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.True(t, report.OK, "errors: %v", report.Errors)

	want := map[string]any{
		"item": []any{
			map[string]any{"item": "Apples", "note": []any{"organic", "local"}},
			map[string]any{"item": "Bananas", "note": []any{"ripe"}},
		},
	}
	if diff := cmp.Diff(want, decodeCaptures(t, report)); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateListItemDepthCapRejectsOverDeepCandidate(t *testing.T) {
	schema := "- `outer:text`d1\n"
	input := "- top\n  - mid\n    - leaf\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.False(t, report.OK)

	var kinds []ErrorKind
	for _, e := range report.Errors {
		kinds = append(kinds, e.Kind())
	}
	assert.Contains(t, kinds, DepthExceeded)
	assert.Contains(t, kinds, QuantifierUnderflow)
}

func TestValidateListItemDepthCapAllowsWithinCap(t *testing.T) {
	schema := "- `outer:text`d1\n  - mid\n"
	input := "- top\n  - mid\n"

	report := Validate([]byte(schema), []byte(input), true)
	assert.True(t, report.OK, "errors: %v", report.Errors)
}

func TestValidateListItemSublistFailureRollsBackCapture(t *testing.T) {
	schema := "- `item:text`{1,2}\n  - expected\n"
	input := "- first\n  - expected\n- second\n  - wrong\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.False(t, report.OK, "the unmatched second item must still fail overall")

	// The second item's sublist fails to match ("wrong" vs. "expected"),
	// so its whole alternative is rejected and its capture must not leak
	// into the tree alongside the first item's successful match.
	want := map[string]any{"item": []any{map[string]any{"item": "first"}}}
	if diff := cmp.Diff(want, decodeCaptures(t, report)); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateNestedThreeLevelQuantifiedLists(t *testing.T) {
	// Mirrors spec.md §8 scenario (f): a top-level quantified item with no
	// sublist, followed by a quantified item whose own sublist is itself a
	// quantified item with a further quantified, doubly-nested sublist.
	schema := "- `test:/test\\d/`{2,2}\n" +
		"- `barbar:/barbar\\d/`{2,2}\n" +
		"  + `deep:/deep\\d/`{1,1}\n" +
		"    - `deeper:/deeper\\d/`{2,2}\n" +
		"    - `deepest:/deepest\\d/`{1,}\n"
	input := "- test1\n" +
		"- test2\n" +
		"- barbar1\n" +
		"  + deep1\n" +
		"    - deeper1\n" +
		"    - deeper2\n" +
		"    - deepest1\n" +
		"- barbar2\n" +
		"  + deep2\n" +
		"    - deeper3\n" +
		"    - deeper4\n" +
		"    - deepest2\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.True(t, report.OK, "errors: %v", report.Errors)

	want := map[string]any{
		"test": []any{"test1", "test2"},
		"barbar": []any{
			map[string]any{
				"barbar": "barbar1",
				"deep": []any{map[string]any{
					"deep":    "deep1",
					"deeper":  []any{"deeper1", "deeper2"},
					"deepest": []any{"deepest1"},
				}},
			},
			map[string]any{
				"barbar": "barbar2",
				"deep": []any{map[string]any{
					"deep":    "deep2",
					"deeper":  []any{"deeper3", "deeper4"},
					"deepest": []any{"deepest2"},
				}},
			},
		},
	}
	if diff := cmp.Diff(want, decodeCaptures(t, report)); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateQuantifierUnderflow(t *testing.T) {
	schema := "- `tag:text`{2,}\n"
	input := "- only-one\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.False(t, report.OK)
	require.NotEmpty(t, report.Errors)
	assert.Equal(t, QuantifierUnderflow, report.Errors[0].Kind())
}

func TestValidateQuantifierOverflow(t *testing.T) {
	schema := "- `tag:text`{1,1}\n"
	input := "- a\n- b\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.False(t, report.OK)
	var kinds []ErrorKind
	for _, e := range report.Errors {
		kinds = append(kinds, e.Kind())
	}
	assert.Contains(t, kinds, QuantifierOverflow)
}

func TestValidateOptionalDirectiveAbsent(t *testing.T) {
	schema := "# Title\n\n`note:text`?\n"
	input := "# Title\n"

	report := Validate([]byte(schema), []byte(input), true)
	assert.True(t, report.OK, "errors: %v", report.Errors)
}

func TestValidateIncompleteStreamsNeedMore(t *testing.T) {
	schema := "# Title\n\nBody copy.\n"
	input := "# Title\n"

	report := Validate([]byte(schema), []byte(input), false)
	assert.False(t, report.OK)
	assert.True(t, report.Incomplete)
	assert.Empty(t, report.Errors)
}

func TestValidateIncompleteAtEOFIsHardFailure(t *testing.T) {
	schema := "# Title\n\nBody copy.\n"
	input := "# Title\n"

	report := Validate([]byte(schema), []byte(input), true)
	assert.False(t, report.OK)
	assert.False(t, report.Incomplete)
	require.NotEmpty(t, report.Errors)
}

func TestValidateSuppressedLabelOmittedFromCaptures(t *testing.T) {
	schema := "`_:/[A-Za-z]+/`\n"
	input := "Wolf\n"

	report := Validate([]byte(schema), []byte(input), true)
	require.True(t, report.OK, "errors: %v", report.Errors)

	b, err := json.Marshal(report.Captures)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestValidateRulerMatchesThematicBreak(t *testing.T) {
	schema := "Above.\n\n`ruler`\n\nBelow.\n"
	input := "Above.\n\n---\n\nBelow.\n"

	report := Validate([]byte(schema), []byte(input), true)
	assert.True(t, report.OK, "errors: %v", report.Errors)
}
