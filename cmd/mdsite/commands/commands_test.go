package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// newWorkspace creates a working directory with:
//
//	templates/page.html
//	templates/index.html
//	site/page.md              (2014-01-01)
//	site/blog/post-1.md       (2014-02-01)
//	site/blog/post-2.markdown (no date)
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	files := map[string]string{
		"templates/page.html":       "<title>{{ title }}</title>\n{{ html }}",
		"templates/index.html":      "{% for a in articles %}\n{{ a.url }}\n{% endfor %}\n",
		"site/page.md":              "Title: A Page\nDate: 2014-01-01\n\nPage body.\n",
		"site/blog/post-1.md":       "Date: 2014-02-01\n\nFirst post.\n",
		"site/blog/post-2.markdown": "Second post.\n",
	}
	for rel, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(rel), 0o750))
		require.NoError(t, os.WriteFile(rel, []byte(content), 0o600))
	}
	return dir
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mdsite"),
		kong.Vars{"version": "test"},
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	g, err := Setup(cli)
	if err != nil {
		return err
	}
	runErr := kctx.Run(g)
	if err := g.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPages_RendersWithTemplateExtension(t *testing.T) {
	newWorkspace(t)

	require.NoError(t, runCLI(t, "pages", "-t", "templates/page.html", "-r", "site"))

	assert.Contains(t, readFile(t, "site/page.html"), "<title>A Page</title>")
	assert.Contains(t, readFile(t, "site/blog/post-1.html"), "<p>First post.</p>")
	assert.Contains(t, readFile(t, "site/blog/post-2.html"), "<title>Post 2</title>")
}

func TestPages_NotRecursive(t *testing.T) {
	newWorkspace(t)

	require.NoError(t, runCLI(t, "pages", "-t", "templates/page.html", "site"))

	assert.FileExists(t, "site/page.html")
	assert.NoFileExists(t, "site/blog/post-1.html")
}

func TestPages_OutputExtensionFlag(t *testing.T) {
	newWorkspace(t)

	require.NoError(t, runCLI(t, "pages", "-t", "templates/page.html", "--output-extension", ".htm", "site/page.md"))

	assert.FileExists(t, "site/page.htm")
}

func TestIndex_UsesTemplateFromConfigFile(t *testing.T) {
	dir := newWorkspace(t)
	require.NoError(t, os.WriteFile("mdsite.yaml", []byte("template: templates/index.html\nrecurse: true\n"), 0o600))

	require.NoError(t, runCLI(t, "index", "-o", "site/index.html", "site"))

	lines := strings.Split(strings.TrimSpace(readFile(t, filepath.Join(dir, "site", "index.html"))), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "blog/post-1.html", lines[1])
	assert.Equal(t, "page.html", lines[2])
}

func TestRss_WritesFeedAndMetrics(t *testing.T) {
	newWorkspace(t)
	require.NoError(t, os.WriteFile("mdsite.yaml", []byte("feed:\n  title: From Config\n"), 0o600))

	err := runCLI(t, "--metrics-file", "mdsite.prom",
		"rss", "-o", "site/feed.xml", "--url", "http://example.com/", "site/page.md", "site/blog/post-1.md")
	require.NoError(t, err)

	feed := readFile(t, "site/feed.xml")
	assert.Contains(t, feed, "<title>From Config</title>")
	assert.Contains(t, feed, "http://example.com/blog/post-1.html")
	assert.Less(t, strings.Index(feed, "post-1.html"), strings.Index(feed, "page.html"))

	assert.Contains(t, readFile(t, "mdsite.prom"), `mdsite_documents_parsed_total{mode="rss"} 2`)
}

func TestRss_NegativeLimit(t *testing.T) {
	newWorkspace(t)

	err := runCLI(t, "rss", "-o", "feed.xml", "--limit=-1", "site")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestMissingSourcePath(t *testing.T) {
	newWorkspace(t)

	err := runCLI(t, "pages", "-t", "templates/page.html", "nope")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestMissingExplicitConfig(t *testing.T) {
	newWorkspace(t)

	err := runCLI(t, "-c", "missing.yaml", "pages", "-t", "templates/page.html", "site")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestInvalidMarkdownExtensionInConfig(t *testing.T) {
	newWorkspace(t)
	require.NoError(t, os.WriteFile("mdsite.yaml", []byte("markdown:\n  extensions: [wikilinks]\n"), 0o600))

	err := runCLI(t, "pages", "-t", "templates/page.html", "site")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestInvalidLogFormat(t *testing.T) {
	newWorkspace(t)

	err := runCLI(t, "--log-format", "xml", "pages", "-t", "templates/page.html", "site")
	require.Error(t, err)
}

func TestSetup_LoggerCarriesBuildIDAndFormat(t *testing.T) {
	newWorkspace(t)
	var out bytes.Buffer
	prev, prevDefault := logOutput, slog.Default()
	logOutput = &out
	t.Cleanup(func() {
		logOutput = prev
		slog.SetDefault(prevDefault)
	})

	g, err := Setup(&CLI{Verbose: true, LogFormat: "json"})
	require.NoError(t, err)
	require.NotEmpty(t, g.BuildID)
	require.NotNil(t, g.ErrorAdapter())

	g.Logger.Error("run failed")
	assert.Contains(t, out.String(), `"build_id":"`+g.BuildID+`"`)
	assert.Contains(t, out.String(), `"msg":"run failed"`)
}
