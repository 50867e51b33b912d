package docmodel

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/dates"
	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
)

// DefaultOutputExtension is used when ParseOptions leaves it empty.
const DefaultOutputExtension = ".html"

// ParseOptions configures Parse. The zero value is usable: default Markdown
// extensions, ".html" output and file modification time as date fallback.
type ParseOptions struct {
	OutputExtension string
	Converter       *markdown.Converter
	Dates           dates.Source
}

func (o ParseOptions) withDefaults() (ParseOptions, error) {
	if o.OutputExtension == "" {
		o.OutputExtension = DefaultOutputExtension
	}
	if !strings.HasPrefix(o.OutputExtension, ".") {
		o.OutputExtension = "." + o.OutputExtension
	}
	if o.Dates == nil {
		o.Dates = dates.ModTime{}
	}
	if o.Converter == nil {
		c, err := markdown.NewConverter()
		if err != nil {
			return o, err
		}
		o.Converter = c
	}
	return o, nil
}

// Parse reads path and builds its Document. URL is left empty; the caller
// sets it for its rendering target.
func Parse(path string, opts ParseOptions) (*Document, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, ferrors.InternalError("markdown converter setup failed").WithCause(err).Build()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.FromPathError(err, path, "cannot read source file")
	}

	meta, body, _, err := frontmatter.Extract(content)
	if err != nil {
		return nil, ferrors.ParseError("invalid front matter").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	html, err := opts.Converter.Convert(body)
	if err != nil {
		return nil, ferrors.ParseError("markdown conversion failed").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	slug := SlugFor(path)

	title := strings.TrimSpace(meta.First("title"))
	if title == "" {
		title = TitleFromSlug(slug)
	}

	date, err := resolveDate(path, meta, opts.Dates)
	if err != nil {
		return nil, err
	}

	return &Document{
		SourcePath: path,
		Slug:       slug,
		Title:      title,
		Date:       date,
		HTML:       html,
		Summary:    markdown.Summary(html),
		OutputPath: OutputPathFor(path, opts.OutputExtension),
		Meta:       meta,
	}, nil
}

func resolveDate(path string, meta frontmatter.Metadata, src dates.Source) (time.Time, error) {
	if raw := strings.TrimSpace(meta.First("date")); raw != "" {
		t, err := dates.Parse(raw)
		if err != nil {
			return time.Time{}, ferrors.ParseError("unparseable date").
				WithCause(err).
				WithContext("path", path).
				WithContext("value", raw).
				Build()
		}
		return t, nil
	}

	t, err := src.DateFor(path)
	if err != nil {
		return time.Time{}, ferrors.FromPathError(err, path, "cannot determine document date")
	}
	return t, nil
}

// SlugFor returns the base name of path without its extension.
func SlugFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPathFor replaces the extension of path with ext.
func OutputPathFor(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
