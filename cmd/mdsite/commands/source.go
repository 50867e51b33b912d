package commands

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/dates"
	"git.home.luguber.info/inful/mdsite/internal/docmodel"
	"git.home.luguber.info/inful/mdsite/internal/docs"
	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/git"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

// SourceFlags are shared by every subcommand.
type SourceFlags struct {
	Template        string   `short:"t" help:"Template file to render with" type:"path"`
	OutputExtension string   `name:"output-extension" help:"Extension of rendered files (default: the template's extension)"`
	Recurse         bool     `short:"r" help:"Recurse into subdirectories"`
	GitDates        bool     `name:"git-dates" help:"Date undated documents by their last git commit instead of file modification time"`
	Paths           []string `arg:"" name:"path" help:"Markdown files or directories of Markdown files" type:"path"`
}

// prepare resolves flags against the configuration file and discovers the
// source files to build.
func (s *SourceFlags) prepare(g *Global) (*site.Builder, []string, error) {
	cfg := g.Config

	template := config.String(s.Template, cfg.Template)
	ext := config.String(s.OutputExtension, cfg.OutputExtension, filepath.Ext(template), docmodel.DefaultOutputExtension)

	converter, err := markdown.NewConverter(config.Strings(cfg.Markdown.Extensions, markdown.DefaultExtensions)...)
	if err != nil {
		return nil, nil, ferrors.ConfigError("invalid markdown.extensions").WithCause(err).Build()
	}

	var source dates.Source = dates.ModTime{}
	if s.GitDates || cfg.GitDates {
		source = git.NewDateSource(nil)
	}

	recurse := s.Recurse || cfg.Recurse
	files, err := docs.Discover(s.Paths, config.Strings(cfg.Extensions, docs.DefaultExtensions), recurse)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		slog.Warn("No source files found", slog.Any("paths", s.Paths), slog.Bool("recurse", recurse))
	}
	slog.Info("Discovered source files",
		logfields.Count(len(files)),
		logfields.Template(template),
		slog.String("output_extension", ext))

	builder := site.NewBuilder(site.Options{
		Template: template,
		Parse: docmodel.ParseOptions{
			OutputExtension: ext,
			Converter:       converter,
			Dates:           source,
		},
	}).WithRecorder(g.Recorder)
	return builder, files, nil
}
