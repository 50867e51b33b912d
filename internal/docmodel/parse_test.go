package docmodel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/dates"
	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func fixedDates(at time.Time) dates.Source {
	return dates.SourceFunc(func(string) (time.Time, error) { return at, nil })
}

func TestParse_MetadataTitleAndDate(t *testing.T) {
	path := writeSource(t, "first-post.md", "Title: Hello\nDate: 2014-01-01\nTags: go\nTags: web\n\n# Heading\n\nBody text.\n")

	doc, err := Parse(path, ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, path, doc.SourcePath)
	assert.Equal(t, "first-post", doc.Slug)
	assert.Equal(t, "Hello", doc.Title)
	assert.Equal(t, 2014, doc.Date.Year())
	assert.Equal(t, time.January, doc.Date.Month())
	assert.Equal(t, 1, doc.Date.Day())
	assert.Contains(t, doc.HTML, "Heading</h1>")
	assert.Equal(t, "Body text.", doc.Summary)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "first-post.html"), doc.OutputPath)
	assert.Empty(t, doc.URL)
	assert.Equal(t, []string{"go", "web"}, doc.Meta.Get("tags"))
}

func TestParse_TitleFallsBackToSlug(t *testing.T) {
	path := writeSource(t, "hello-world_again.md", "Just text.\n")

	doc, err := Parse(path, ParseOptions{Dates: fixedDates(time.Now())})
	require.NoError(t, err)
	assert.Equal(t, "Hello World Again", doc.Title)
}

func TestParse_EmptyTitleFallsBackToSlug(t *testing.T) {
	path := writeSource(t, "notes.md", "Title:\n\nBody\n")

	doc, err := Parse(path, ParseOptions{Dates: fixedDates(time.Now())})
	require.NoError(t, err)
	assert.Equal(t, "Notes", doc.Title)
}

func TestParse_DateFallsBackToSource(t *testing.T) {
	fallback := time.Date(2012, time.June, 7, 8, 9, 10, 0, time.UTC)
	path := writeSource(t, "a.md", "Date:\n\nBody\n")

	doc, err := Parse(path, ParseOptions{Dates: fixedDates(fallback)})
	require.NoError(t, err)
	assert.Equal(t, fallback, doc.Date)
}

func TestParse_DefaultDateIsModTime(t *testing.T) {
	path := writeSource(t, "a.md", "Body\n")
	mtime := time.Date(2011, time.March, 3, 3, 3, 3, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	doc, err := Parse(path, ParseOptions{})
	require.NoError(t, err)
	assert.True(t, mtime.Equal(doc.Date), "got %s", doc.Date)
}

func TestParse_UnparseableDate(t *testing.T) {
	path := writeSource(t, "bad.md", "Date: sometime soon\n\nBody\n")

	_, err := Parse(path, ParseOptions{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
	assert.Contains(t, err.Error(), path)

	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	value, _ := ce.Context().GetString("value")
	assert.Equal(t, "sometime soon", value)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.md"), ParseOptions{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestParse_BrokenFrontMatter(t *testing.T) {
	path := writeSource(t, "broken.md", "---\ntitle: x\nno closing delimiter\n")

	_, err := Parse(path, ParseOptions{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
}

func TestParse_LeadingHorizontalRule(t *testing.T) {
	path := writeSource(t, "rule.md", "---\n\nIntro paragraph.\n\n---\n\nMore text.\n")

	doc, err := Parse(path, ParseOptions{Dates: fixedDates(time.Now())})
	require.NoError(t, err)
	assert.Empty(t, doc.Meta)
	assert.Contains(t, doc.HTML, "<hr")
	assert.Contains(t, doc.HTML, "Intro paragraph.")
	assert.Contains(t, doc.HTML, "More text.")
	assert.Equal(t, "Rule", doc.Title)
}

func TestParse_OutputExtension(t *testing.T) {
	path := writeSource(t, "page.markdown", "Body\n")

	doc, err := Parse(path, ParseOptions{OutputExtension: "xml", Dates: fixedDates(time.Now())})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "page.xml"), doc.OutputPath)
}

func TestParse_CustomConverter(t *testing.T) {
	conv, err := markdown.NewConverter("tables")
	require.NoError(t, err)
	path := writeSource(t, "a.md", "one\ntwo\n")

	doc, err := Parse(path, ParseOptions{Converter: conv, Dates: fixedDates(time.Now())})
	require.NoError(t, err)
	assert.NotContains(t, doc.HTML, "<br")
}

func TestDocument_Context(t *testing.T) {
	path := writeSource(t, "a.md", "Title: Real\nAuthor: Ann\nTags: a\nTags: b\nSlug: ignored\n\nFirst paragraph.\n")
	doc, err := Parse(path, ParseOptions{Dates: fixedDates(time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	doc.URL = "a.html"

	ctx := doc.Context()
	assert.Equal(t, "Real", ctx[KeyTitle])
	assert.Equal(t, doc.Date, ctx[KeyDate])
	assert.Equal(t, doc.HTML, ctx[KeyHTML])
	assert.Equal(t, "a", ctx[KeySlug], "document fields shadow metadata")
	assert.Equal(t, path, ctx[KeySource])
	assert.Equal(t, doc.OutputPath, ctx[KeyLink])
	assert.Equal(t, "a.html", ctx[KeyURL])
	assert.Equal(t, "First paragraph.", ctx[KeySummary])
	assert.Equal(t, "Ann", ctx["author"])
	assert.Equal(t, []string{"a", "b"}, ctx["tags"])
}

func TestTitleFromSlug(t *testing.T) {
	tests := map[string]string{
		"hello":         "Hello",
		"hello-world":   "Hello World",
		"snake_case_ok": "Snake Case Ok",
		"MIXED-case":    "Mixed Case",
		"2014-01-recap": "2014 01 Recap",
	}
	for in, want := range tests {
		assert.Equal(t, want, TitleFromSlug(in), in)
	}
}

func TestSlugAndOutputPath(t *testing.T) {
	assert.Equal(t, "post", SlugFor(filepath.Join("a", "b", "post.md")))
	assert.Equal(t, "archive.tar", SlugFor("archive.tar.md"))
	assert.Equal(t, filepath.Join("a", "post.html"), OutputPathFor(filepath.Join("a", "post.md"), ".html"))
}
