package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_DefaultExtensions(t *testing.T) {
	c, err := NewConverter()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading and paragraph",
			input:    "# Hello\n\nWorld\n",
			contains: []string{"<h1", "Hello</h1>", "<p>World</p>"},
		},
		{
			name:     "tables",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "definition lists",
			input:    "Term\n: Definition\n",
			contains: []string{"<dl>", "<dt>Term</dt>", "<dd>Definition</dd>"},
		},
		{
			name:     "footnotes",
			input:    "Text[^1]\n\n[^1]: Note\n",
			contains: []string{"footnote"},
		},
		{
			name:     "hard line breaks",
			input:    "line one\nline two\n",
			contains: []string{"line one<br>"},
		},
		{
			name:     "raw html passes through",
			input:    "<div class=\"x\">raw</div>\n",
			contains: []string{"<div class=\"x\">raw</div>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Convert([]byte(tt.input))
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestConverter_WithoutNl2br(t *testing.T) {
	c, err := NewConverter("tables")
	require.NoError(t, err)

	out, err := c.Convert([]byte("line one\nline two\n"))
	require.NoError(t, err)
	assert.NotContains(t, out, "<br")
}

func TestNewConverter_UnknownExtension(t *testing.T) {
	_, err := NewConverter("extra", "wikilinks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"wikilinks"`)
}

func TestNewConverter_NamesAreNormalized(t *testing.T) {
	_, err := NewConverter(" EXTRA ", "extra", "", "Sane_Lists")
	require.NoError(t, err)
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"first paragraph", "<h1>T</h1>\n<p>First <em>para</em>\ngraph.</p><p>Second</p>", "First para graph."},
		{"line breaks", "<p>one<br>two</p>", "one two"},
		{"no paragraph", "<h1>Only heading</h1>", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.html))
		})
	}
}
