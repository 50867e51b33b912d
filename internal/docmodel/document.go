// Package docmodel defines the Document produced for every Markdown source
// file and the parser that builds it.
package docmodel

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
)

// Document is one parsed source file. A Document is built fresh for every
// rendering target; URL in particular is only meaningful for the target that
// set it.
type Document struct {
	SourcePath string
	Slug       string
	Title      string
	Date       time.Time
	HTML       string
	Summary    string
	OutputPath string
	URL        string
	Meta       frontmatter.Metadata
}

// Template context keys. Metadata keys with the same name are shadowed.
const (
	KeyTitle   = "title"
	KeyDate    = "date"
	KeyHTML    = "html"
	KeySlug    = "slug"
	KeySource  = "source"
	KeyLink    = "link"
	KeyURL     = "url"
	KeySummary = "summary"
)

// Context returns the template view of the document. Every metadata key is
// exposed: single-valued keys as a string, multi-valued keys as []string.
// Document fields take precedence over metadata of the same name.
func (d *Document) Context() map[string]any {
	ctx := make(map[string]any, len(d.Meta)+8)
	for key, values := range d.Meta {
		switch len(values) {
		case 0:
			ctx[key] = ""
		case 1:
			ctx[key] = values[0]
		default:
			ctx[key] = append([]string(nil), values...)
		}
	}

	ctx[KeyTitle] = d.Title
	ctx[KeyDate] = d.Date
	ctx[KeyHTML] = d.HTML
	ctx[KeySlug] = d.Slug
	ctx[KeySource] = d.SourcePath
	ctx[KeyLink] = d.OutputPath
	ctx[KeyURL] = d.URL
	ctx[KeySummary] = d.Summary
	return ctx
}

var slugSeparators = strings.NewReplacer("-", " ", "_", " ")

// TitleFromSlug turns "hello-world_again" into "Hello World Again".
func TitleFromSlug(slug string) string {
	return cases.Title(language.Und).String(slugSeparators.Replace(slug))
}
