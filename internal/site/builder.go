// Package site runs the three build modes: individual pages, an index page
// and an RSS feed. Every mode parses its own fresh Documents so that URLs
// computed for one target never leak into another.
package site

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/docmodel"
	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/render"
)

// Build modes.
const (
	ModePages = "pages"
	ModeIndex = "index"
	ModeRSS   = "rss"
)

// Options configures a Builder.
type Options struct {
	// Template renders pages and the index. The feed does not use it.
	Template string
	Parse    docmodel.ParseOptions
}

// Result summarizes one build mode run.
type Result struct {
	Mode      string
	Documents int
	Written   int
	Duration  time.Duration
}

// Builder renders parsed Documents to disk.
type Builder struct {
	opts     Options
	renderer *render.Renderer
	recorder metrics.Recorder
	now      func() time.Time
}

// NewBuilder returns a Builder that records no metrics.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:     opts,
		renderer: render.New(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// WithRecorder sets the metrics recorder. A nil recorder restores the no-op one.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	b.recorder = r
	return b
}

// WithClock overrides the time source used for the feed's build date.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

func (b *Builder) run(mode string, fn func(*Result) error) (Result, error) {
	start := time.Now()
	res := Result{Mode: mode}

	err := fn(&res)
	res.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(mode, res.Duration)

	switch {
	case err == nil:
		b.recorder.IncBuildOutcome(mode, metrics.OutcomeSuccess)
		slog.Info("Build finished",
			logfields.Mode(mode),
			logfields.Count(res.Documents),
			slog.Int("written", res.Written),
			logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		b.recorder.IncBuildOutcome(mode, metrics.OutcomeCanceled)
	default:
		b.recorder.IncBuildOutcome(mode, metrics.OutcomeFailed)
		slog.Debug("Build failed", logfields.Mode(mode), logfields.Error(err))
	}
	return res, err
}

func (b *Builder) requireTemplate() error {
	if b.opts.Template == "" {
		return ferrors.ValidationError("a template is required for this mode").Build()
	}
	return nil
}

func (b *Builder) parse(ctx context.Context, mode, path string) (*docmodel.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := docmodel.Parse(path, b.opts.Parse)
	if err != nil {
		return nil, err
	}
	b.recorder.IncDocumentsParsed(mode)
	slog.Debug("Parsed document", logfields.Mode(mode), logfields.Path(path))
	return doc, nil
}

// parseSorted parses every file and orders the Documents newest first. Ties
// keep input order.
func (b *Builder) parseSorted(ctx context.Context, mode string, files []string) ([]*docmodel.Document, error) {
	docs := make([]*docmodel.Document, 0, len(files))
	for _, path := range files {
		doc, err := b.parse(ctx, mode, path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	SortByDateDesc(docs)
	return docs, nil
}

// SortByDateDesc sorts docs newest first, keeping input order for equal dates.
func SortByDateDesc(docs []*docmodel.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Date.After(docs[j].Date)
	})
}

func (b *Builder) write(mode, content, destination string) error {
	if err := render.Write(content, destination); err != nil {
		return err
	}
	b.recorder.IncFilesWritten(mode)
	slog.Debug("Wrote output", logfields.Mode(mode), logfields.Output(destination))
	return nil
}
