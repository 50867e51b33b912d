// Package render executes Jinja/Django-style templates with pongo2 and writes
// the results to disk.
package render

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/flosch/pongo2/v6"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

var disableAutoescape sync.Once

// Renderer loads templates from disk. Each template is loaded through a set
// rooted at its own directory so it can include or extend its siblings.
// Templates are parsed once per Renderer and reused.
type Renderer struct {
	sets      map[string]*pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// New returns an empty Renderer.
func New() *Renderer {
	// Document HTML is inserted verbatim, as in Jinja's default environment.
	disableAutoescape.Do(func() { pongo2.SetAutoescape(false) })

	return &Renderer{
		sets:      map[string]*pongo2.TemplateSet{},
		templates: map[string]*pongo2.Template{},
	}
}

// Render executes the template at templatePath with ctx bound as its
// top-level variables.
func (r *Renderer) Render(ctx map[string]any, templatePath string) (string, error) {
	tpl, err := r.load(templatePath)
	if err != nil {
		return "", err
	}

	out, err := tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", ferrors.TemplateError("template execution failed").
			WithCause(err).
			WithContext("path", templatePath).
			Build()
	}
	return out, nil
}

func (r *Renderer) load(templatePath string) (*pongo2.Template, error) {
	abs, err := filepath.Abs(templatePath)
	if err != nil {
		return nil, ferrors.FromPathError(err, templatePath, "cannot resolve template path")
	}
	if tpl, ok := r.templates[abs]; ok {
		return tpl, nil
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, ferrors.FromPathError(err, templatePath, "template not found")
	}
	if info.IsDir() {
		return nil, ferrors.ValidationError("template path is a directory").
			WithContext("path", templatePath).
			Build()
	}

	set, err := r.setFor(filepath.Dir(abs))
	if err != nil {
		return nil, ferrors.TemplateError("cannot create template loader").
			WithCause(err).
			WithContext("path", templatePath).
			Build()
	}

	tpl, err := set.FromFile(filepath.Base(abs))
	if err != nil {
		return nil, ferrors.TemplateError("template syntax error").
			WithCause(err).
			WithContext("path", templatePath).
			Build()
	}
	r.templates[abs] = tpl
	return tpl, nil
}

func (r *Renderer) setFor(dir string) (*pongo2.TemplateSet, error) {
	if set, ok := r.sets[dir]; ok {
		return set, nil
	}
	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return nil, err
	}
	set := pongo2.NewSet(dir, loader)
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true
	r.sets[dir] = set
	return set, nil
}

// Write stores content at destination, creating missing parent directories
// and truncating an existing file.
func Write(content, destination string) error {
	if dir := filepath.Dir(destination); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // public site output
			return ferrors.FromPathError(err, dir, "cannot create output directory")
		}
	}
	if err := os.WriteFile(destination, []byte(content), 0o644); err != nil { //nolint:gosec // public site output
		return ferrors.FromPathError(err, destination, "cannot write output file")
	}
	return nil
}
