package matcher

import (
	"testing"

	"github.com/404wolf/mdvalidate/internal/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func firstParagraph(t *testing.T, source string) (ast.Node, []byte) {
	t.Helper()
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	var found ast.Node
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if found == nil && (n.Kind() == ast.KindParagraph || n.Kind() == ast.KindTextBlock) {
			found = n
		}
		return ast.WalkContinue, nil
	})
	require.NotNil(t, found, "no paragraph found in %q", source)
	return found, src
}

func TestParseCore(t *testing.T) {
	cases := []struct {
		content string
		wantOK  bool
		wantLbl string
		wantKnd PatternKind
		wantRe  string
	}{
		{"name:/[A-Za-z]+/", true, "name", Regex, "[A-Za-z]+"},
		{"_:text", true, "_", Text, ""},
		{"count:number", true, "count", Number, ""},
		{"body:html", true, "body", Html, ""},
		{"ruler", true, "", Ruler, ""},
		{"sep:ruler", true, "sep", Ruler, ""},
		{"escaped:/a\\/b/", true, "escaped", Regex, "a/b"},
		{"no colon here", false, "", 0, ""},
		{"1bad:text", false, "", 0, ""},
		{"ok:/unterminated", false, "", 0, ""},
	}
	for _, c := range cases {
		t.Run(c.content, func(t *testing.T) {
			core, ok := parseCore(c.content)
			require.Equal(t, c.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, c.wantLbl, core.label)
			assert.Equal(t, c.wantKnd, core.kind)
			assert.Equal(t, c.wantRe, core.regexSource)
		})
	}
}

func TestParseSuffix(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		r := parseSuffix(" is great")
		assert.False(t, r.optional)
		assert.Equal(t, DefaultCount(), r.count)
		assert.Equal(t, 0, r.consumed)
	})

	t.Run("optional", func(t *testing.T) {
		r := parseSuffix("? trailing")
		assert.True(t, r.optional)
		assert.Equal(t, 1, r.consumed)
	})

	t.Run("one or more", func(t *testing.T) {
		r := parseSuffix("+ rest")
		require.True(t, r.count.Unbounded())
		assert.Equal(t, 1, r.count.Min)
		assert.Equal(t, 1, r.consumed)
	})

	t.Run("bounded count", func(t *testing.T) {
		r := parseSuffix("{2,4}x")
		require.False(t, r.count.Unbounded())
		assert.Equal(t, 2, r.count.Min)
		assert.Equal(t, 4, *r.count.Max)
		assert.Equal(t, 5, r.consumed)
	})

	t.Run("open-ended min", func(t *testing.T) {
		r := parseSuffix("{3,}")
		assert.Equal(t, 3, r.count.Min)
		assert.True(t, r.count.Unbounded())
	})

	t.Run("depth cap", func(t *testing.T) {
		r := parseSuffix("d2 rest")
		require.NotNil(t, r.depth)
		assert.Equal(t, 2, *r.depth)
		assert.Equal(t, 2, r.consumed)
	})

	t.Run("escape level one", func(t *testing.T) {
		r := parseSuffix("! literally")
		assert.Equal(t, 1, r.escapeLevel)
		assert.Equal(t, 1, r.consumed)
	})

	t.Run("escape level two", func(t *testing.T) {
		r := parseSuffix("!!")
		assert.Equal(t, 2, r.escapeLevel)
		assert.Equal(t, 2, r.consumed)
	})

	t.Run("full order", func(t *testing.T) {
		r := parseSuffix("?{1,3}d4!! trailing")
		assert.True(t, r.optional)
		assert.Equal(t, 1, r.count.Min)
		assert.Equal(t, 3, *r.count.Max)
		require.NotNil(t, r.depth)
		assert.Equal(t, 4, *r.depth)
		assert.Equal(t, 2, r.escapeLevel)
	})
}

func TestScanSingleDirective(t *testing.T) {
	n, src := firstParagraph(t, "Hi, `name:/[A-Za-z]+/`.")
	c, err := Scan(walk.NewCursor(n, src))
	require.NoError(t, err)
	require.NotNil(t, c.Directive)
	assert.Equal(t, "name", c.Directive.Label)
	assert.Equal(t, Regex, c.Directive.Kind)
	assert.Equal(t, "[A-Za-z]+", c.Directive.RegexSource)
	assert.Equal(t, DefaultCount(), c.Directive.Count)
}

func TestScanLiteralNode(t *testing.T) {
	n, src := firstParagraph(t, "Just plain text with `inline code` in it.")
	c, err := Scan(walk.NewCursor(n, src))
	require.NoError(t, err)
	require.Nil(t, c.Directive)
	require.NotNil(t, c.Literal)
	assert.Contains(t, c.Literal(), "inline code")
}

func TestScanMultipleMatchersError(t *testing.T) {
	n, src := firstParagraph(t, "`a:text` and `b:text`")
	_, err := Scan(walk.NewCursor(n, src))
	require.Error(t, err)
	var mm *MultipleMatchersError
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, 2, mm.N)
}

func TestScanEscapedDirectiveIsLiteral(t *testing.T) {
	n, src := firstParagraph(t, "See `id:/x/`!! now")
	c, err := Scan(walk.NewCursor(n, src))
	require.NoError(t, err)
	require.Nil(t, c.Directive)
	assert.Equal(t, "See id:/x/! now", c.Literal())
}

func TestScanOptionalQuantifiedDirective(t *testing.T) {
	n, src := firstParagraph(t, "`tag:/[a-z]+/`?{2,5} rest")
	c, err := Scan(walk.NewCursor(n, src))
	require.NoError(t, err)
	require.NotNil(t, c.Directive)
	assert.True(t, c.Directive.Optional)
	assert.Equal(t, 2, c.Directive.Count.Min)
	require.NotNil(t, c.Directive.Count.Max)
	assert.Equal(t, 5, *c.Directive.Count.Max)
}
