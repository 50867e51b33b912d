// Package feed builds the RSS 2.0 feed for a set of Documents.
package feed

import (
	"io"
	"time"

	"github.com/gorilla/feeds"

	"git.home.luguber.info/inful/mdsite/internal/docmodel"
	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// Meta describes the channel.
type Meta struct {
	Title       string
	Description string
	URL         string
	// Limit caps the number of items; zero keeps all of them.
	Limit int
}

// Build creates a feed with one item per document, in the given order. Each
// document's URL must already be absolute.
func Build(docs []*docmodel.Document, meta Meta, now time.Time) *feeds.Feed {
	f := &feeds.Feed{
		Title:       meta.Title,
		Link:        &feeds.Link{Href: meta.URL},
		Description: meta.Description,
		Updated:     now,
	}

	if meta.Limit > 0 && len(docs) > meta.Limit {
		docs = docs[:meta.Limit]
	}

	f.Items = make([]*feeds.Item, 0, len(docs))
	for _, doc := range docs {
		f.Items = append(f.Items, &feeds.Item{
			Title:       doc.Title,
			Link:        &feeds.Link{Href: doc.URL},
			Description: doc.HTML,
			Id:          doc.URL,
			Created:     doc.Date,
		})
	}
	return f
}

// Write serializes f as RSS 2.0.
func Write(f *feeds.Feed, w io.Writer) error {
	if err := f.WriteRss(w); err != nil {
		return ferrors.FeedError("cannot write rss feed").WithCause(err).Build()
	}
	return nil
}
