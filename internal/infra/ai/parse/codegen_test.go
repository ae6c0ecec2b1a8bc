package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

func TestParseCodeGenCode(t *testing.T) {
	raw := `{"language":"Python","code":"print('hi')","prompt":"say hi"}`
	res, err := ParseCodeGen(raw, "python")
	require.NoError(t, err)
	assert.Equal(t, ai.CodeGenResult{Language: "python", Code: "print('hi')", PromptSummary: "say hi"}, res)
}

func TestParseCodeGenMarkup(t *testing.T) {
	raw := "```json\n{\"language\":\"HTML\",\"html\":\"<h1>Hi</h1>\"}\n```"
	res, err := ParseCodeGen(raw, "html")
	require.NoError(t, err)
	assert.Equal(t, "html", res.Language)
	assert.Equal(t, "<h1>Hi</h1>", res.Markup)
	assert.Empty(t, res.Code)
}

func TestParseCodeGenRelocatesMarkup(t *testing.T) {
	raw := `{"language":"html","code":"<section class=\"hero\"><h1>Welcome</h1></section>"}`
	res, err := ParseCodeGen(raw, "html")
	require.NoError(t, err)
	assert.Equal(t, `<section class="hero"><h1>Welcome</h1></section>`, res.Markup)
	assert.Empty(t, res.Code)
}

func TestParseCodeGenKeepsCodeWhenHintIsNotHTML(t *testing.T) {
	raw := `{"language":"python","code":"html = '<p>x</p>'"}`
	res, err := ParseCodeGen(raw, "python")
	require.NoError(t, err)
	assert.Equal(t, "html = '<p>x</p>'", res.Code)
	assert.Empty(t, res.Markup)
}

func TestParseCodeGenDoesNotRelocateNonMarkup(t *testing.T) {
	raw := `{"language":"javascript","code":"document.title = 'x'"}`
	res, err := ParseCodeGen(raw, "html")
	require.NoError(t, err)
	assert.Equal(t, "document.title = 'x'", res.Code)
	assert.Empty(t, res.Markup)
	assert.Equal(t, "javascript", res.Language)
}

func TestParseCodeGenLanguageRepair(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		hint string
		want string
	}{
		{"alias", `{"language":"C++","code":"int main(){}"}`, "cpp", "cpp"},
		{"golang alias", `{"language":"golang","code":"package main"}`, "go", "go"},
		{"absent uses hint", `{"code":"print(1)"}`, "python", "python"},
		{"unrecognized uses hint", `{"language":"unknown","code":"print(1)"}`, "python", "python"},
		{"absent and unknown hint", `{"code":"x"}`, "unknown", "text"},
		{"absent and empty hint", `{"code":"x"}`, "", "text"},
		{"markup only defaults to html", `{"html":"<p>x</p>"}`, "unknown", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseCodeGen(tt.raw, tt.hint)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Language)
		})
	}
}

func TestParseCodeGenUnparseable(t *testing.T) {
	t.Run("raw code", func(t *testing.T) {
		raw := "def add(a, b):\n    return a + b"
		res, err := ParseCodeGen(raw, "python")
		assert.ErrorIs(t, err, ai.ErrMalformedResponse)
		assert.Equal(t, "python", res.Language)
		assert.Equal(t, raw, res.Code)
		assert.Empty(t, res.Markup)
		assert.Equal(t, raw, res.PromptSummary)
	})

	t.Run("raw markup in fences", func(t *testing.T) {
		raw := "```html\n<div>hello</div>\n```"
		res, err := ParseCodeGen(raw, "unknown")
		assert.Error(t, err)
		assert.Equal(t, "<div>hello</div>", res.Markup)
		assert.Empty(t, res.Code)
		assert.Equal(t, "html", res.Language)
	})

	t.Run("html hint forces markup", func(t *testing.T) {
		res, _ := ParseCodeGen("hero section with a button", "html")
		assert.Equal(t, "hero section with a button", res.Markup)
		assert.Equal(t, "html", res.Language)
	})

	t.Run("long raw is truncated in summary", func(t *testing.T) {
		raw := strings.Repeat("x", 600)
		res, _ := ParseCodeGen(raw, "unknown")
		assert.Len(t, res.PromptSummary, MaxRawPrefix)
		assert.Equal(t, raw, res.Code)
	})

	t.Run("empty", func(t *testing.T) {
		res, err := ParseCodeGen("", "go")
		assert.Error(t, err)
		assert.True(t, res.Empty())
		assert.Equal(t, "go", res.Language)
	})
}

func TestParseCodeGenRawCodeWithBraces(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		hint string
	}{
		{"javascript noop", "function noop() {}\nmodule.exports = noop;", "javascript"},
		{"go empty struct", "package main\n\ntype Empty struct{}\n\nfunc main() {}", "go"},
		{"java class", "class Node {}\n", "java"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseCodeGen(tt.raw, tt.hint)
			assert.ErrorIs(t, err, ai.ErrMalformedResponse)
			assert.False(t, res.Empty())
			assert.Equal(t, strings.TrimSpace(tt.raw), res.Code)
			assert.Equal(t, tt.hint, res.Language)
			assert.Equal(t, tt.raw, res.PromptSummary)
		})
	}
}

func TestCanonicalLanguage(t *testing.T) {
	l, ok := CanonicalLanguage(" TypeScript ")
	assert.True(t, ok)
	assert.Equal(t, "typescript", l)

	l, ok = CanonicalLanguage("c#")
	assert.True(t, ok)
	assert.Equal(t, "csharp", l)

	_, ok = CanonicalLanguage("klingon")
	assert.False(t, ok)

	_, ok = CanonicalLanguage("")
	assert.False(t, ok)
}
