// Package markdown renders Markdown bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultExtensions mirrors the classic "extra, meta, nl2br, sane_lists"
// Markdown setup: tables, definition lists, footnotes, hard line breaks.
var DefaultExtensions = []string{"extra", "meta", "nl2br", "sane_lists"}

type engineConfig struct {
	extenders      []goldmark.Extender
	parserOptions  []parser.Option
	rendererOption []goldmark.Option
}

// extensionRegistry maps extension names to goldmark configuration. "meta"
// and "sane_lists" are accepted for compatibility; metadata is extracted
// before conversion and CommonMark list parsing already behaves sanely.
var extensionRegistry = map[string]func(*engineConfig){
	"extra": func(c *engineConfig) {
		c.extenders = append(c.extenders, extension.Table, extension.DefinitionList, extension.Footnote)
		c.parserOptions = append(c.parserOptions, parser.WithAttribute())
	},
	"tables":    extender(extension.Table),
	"table":     extender(extension.Table),
	"def_list":  extender(extension.DefinitionList),
	"footnotes": extender(extension.Footnote),
	"attr_list": func(c *engineConfig) {
		c.parserOptions = append(c.parserOptions, parser.WithAttribute())
	},
	"gfm":           extender(extension.GFM),
	"strikethrough": extender(extension.Strikethrough),
	"linkify":       extender(extension.Linkify),
	"tasklist":      extender(extension.TaskList),
	"typographer":   extender(extension.Typographer),
	"toc": func(c *engineConfig) {
		c.parserOptions = append(c.parserOptions, parser.WithAutoHeadingID())
	},
	"nl2br": func(c *engineConfig) {
		c.rendererOption = append(c.rendererOption, goldmark.WithRendererOptions(html.WithHardWraps()))
	},
	"meta":       func(*engineConfig) {},
	"sane_lists": func(*engineConfig) {},
}

func extender(e goldmark.Extender) func(*engineConfig) {
	return func(c *engineConfig) {
		c.extenders = append(c.extenders, e)
	}
}

// KnownExtensions lists the extension names accepted by NewConverter.
func KnownExtensions() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Converter turns Markdown into HTML. It holds no per-document state and can
// be reused for any number of documents.
type Converter struct {
	engine goldmark.Markdown
}

// NewConverter builds a converter with the named extensions enabled. An empty
// list selects DefaultExtensions. Unknown names are an error.
func NewConverter(extensions ...string) (*Converter, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	cfg := &engineConfig{}
	seen := map[string]struct{}{}
	for _, name := range extensions {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		apply, ok := extensionRegistry[key]
		if !ok {
			return nil, fmt.Errorf("unknown markdown extension %q (known: %s)", name, strings.Join(KnownExtensions(), ", "))
		}
		apply(cfg)
		seen[key] = struct{}{}
	}

	options := []goldmark.Option{
		goldmark.WithExtensions(cfg.extenders...),
		goldmark.WithParserOptions(cfg.parserOptions...),
		// Raw HTML in sources is passed through unchanged.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	}
	options = append(options, cfg.rendererOption...)

	return &Converter{engine: goldmark.New(options...)}, nil
}

// Convert renders body to HTML.
func (c *Converter) Convert(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.engine.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return buf.String(), nil
}
