package commands

import (
	"context"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/feed"
	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	SourceFlags `embed:""`
}

func (p *PagesCmd) Run(ctx context.Context, g *Global) error {
	builder, files, err := p.prepare(g)
	if err != nil {
		return err
	}
	_, err = builder.Pages(ctx, files)
	return err
}

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	SourceFlags `embed:""`
	Output      string `short:"o" required:"" help:"Write the index to this file" type:"path"`
}

func (i *IndexCmd) Run(ctx context.Context, g *Global) error {
	builder, files, err := i.prepare(g)
	if err != nil {
		return err
	}
	_, err = builder.Index(ctx, files, i.Output)
	return err
}

// RssCmd implements the 'rss' command. The template is optional here; it
// only supplies the default output extension used in item links.
type RssCmd struct {
	SourceFlags `embed:""`
	Output      string `short:"o" required:"" help:"Write the feed to this file" type:"path"`
	Title       string `help:"Title of the feed"`
	Description string `help:"Description of the feed"`
	URL         string `name:"url" help:"Base URL the feed and its items are published under"`
	Limit       int    `help:"Maximum number of items (0 = all)"`
}

func (r *RssCmd) Run(ctx context.Context, g *Global) error {
	if r.Limit < 0 {
		return ferrors.ValidationError("--limit must not be negative").WithContext("value", r.Limit).Build()
	}
	builder, files, err := r.prepare(g)
	if err != nil {
		return err
	}
	fc := g.Config.Feed
	_, err = builder.Feed(ctx, files, r.Output, feed.Meta{
		Title:       config.String(r.Title, fc.Title),
		Description: config.String(r.Description, fc.Description),
		URL:         config.String(r.URL, fc.URL),
		Limit:       config.Int(r.Limit, fc.Limit),
	})
	return err
}
