package site

import (
	"bytes"
	"context"
	"log/slog"

	"git.home.luguber.info/inful/mdsite/internal/feed"
	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/linker"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// Pages renders every file on its own to the document's output path.
func (b *Builder) Pages(ctx context.Context, files []string) (Result, error) {
	return b.run(ModePages, func(res *Result) error {
		if err := b.requireTemplate(); err != nil {
			return err
		}
		for _, path := range files {
			doc, err := b.parse(ctx, ModePages, path)
			if err != nil {
				return err
			}
			res.Documents++

			content, err := b.renderer.Render(doc.Context(), b.opts.Template)
			if err != nil {
				return err
			}
			if err := b.write(ModePages, content, doc.OutputPath); err != nil {
				return err
			}
			res.Written++
		}
		return nil
	})
}

// Index renders all files, newest first, into a single output. Each
// document's URL is relative to output.
func (b *Builder) Index(ctx context.Context, files []string, output string) (Result, error) {
	return b.run(ModeIndex, func(res *Result) error {
		if err := b.requireTemplate(); err != nil {
			return err
		}
		docs, err := b.parseSorted(ctx, ModeIndex, files)
		if err != nil {
			return err
		}
		res.Documents = len(docs)

		articles := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			doc.URL = linker.RelativeURL(doc.OutputPath, output)
			articles = append(articles, doc.Context())
		}

		content, err := b.renderer.Render(map[string]any{"articles": articles}, b.opts.Template)
		if err != nil {
			return err
		}
		if err := b.write(ModeIndex, content, output); err != nil {
			return err
		}
		res.Written = 1
		return nil
	})
}

// Feed writes an RSS feed of all files, newest first, to output. Item links
// are resolved against meta.URL.
func (b *Builder) Feed(ctx context.Context, files []string, output string, meta feed.Meta) (Result, error) {
	return b.run(ModeRSS, func(res *Result) error {
		docs, err := b.parseSorted(ctx, ModeRSS, files)
		if err != nil {
			return err
		}
		res.Documents = len(docs)

		for _, doc := range docs {
			u, err := linker.AbsoluteURL(doc.OutputPath, output, meta.URL)
			if err != nil {
				return ferrors.ValidationError("invalid feed url").
					WithCause(err).
					WithContext("url", meta.URL).
					Build()
			}
			doc.URL = u
			slog.Debug("Resolved feed link", logfields.Path(doc.SourcePath), logfields.URL(u))
		}
		if meta.URL == "" {
			slog.Warn("Feed has no base URL; item links are relative", logfields.Output(output))
		}

		var buf bytes.Buffer
		if err := feed.Write(feed.Build(docs, meta, b.now()), &buf); err != nil {
			return err
		}
		if err := b.write(ModeRSS, buf.String(), output); err != nil {
			return err
		}
		res.Written = 1
		return nil
	})
}
