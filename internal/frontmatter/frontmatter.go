// Package frontmatter separates document metadata from the Markdown body.
//
// Two shapes are recognized at the top of a document:
//
//   - a "Key: value" block (MultiMarkdown style) ending at the first blank
//     line, where indented lines continue the previous key;
//   - a delimited block, YAML between "---" lines or TOML between "+++" lines.
//
// A leading "---" followed by a blank line, or by a block that does not start
// with a key and does not decode to a mapping, is a Markdown horizontal rule
// and stays in the body.
//
// Either way the result is a Metadata map of lower-cased keys to string values.
package frontmatter

import (
	"bytes"
	"errors"
	"sort"
	"strings"
)

// Format identifies which metadata shape a document used.
type Format string

const (
	FormatNone Format = ""
	FormatMeta Format = "meta"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrMissingClosingDelimiter indicates the document started with a front
// matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Metadata maps lower-cased keys to their values. A key may carry several
// values when it is repeated or written as a list.
type Metadata map[string][]string

// Add appends value to key. Keys are lower-cased.
func (m Metadata) Add(key, value string) {
	key = strings.ToLower(strings.TrimSpace(key))
	m[key] = append(m[key], value)
}

// Get returns every value stored for key.
func (m Metadata) Get(key string) []string {
	return m[strings.ToLower(key)]
}

// First returns the first value of key, or "" when absent.
func (m Metadata) First(key string) string {
	if values := m.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// Keys returns the metadata keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extract splits content into metadata and body. It has no side effects and
// keeps no state between calls. Documents without metadata yield an empty
// Metadata, FormatNone and the full content as body.
func Extract(content []byte) (Metadata, []byte, Format, error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))

	switch firstLine(content) {
	case yamlDelimiter:
		return extractYAML(content)
	case tomlDelimiter:
		meta, body, err := extractDelimited(content, tomlDelimiter)
		return meta, body, FormatTOML, err
	}

	meta, body := extractMeta(content)
	if len(meta) == 0 {
		return meta, body, FormatNone, nil
	}
	return meta, body, FormatMeta, nil
}

// firstLine returns the first line of content without its line ending and
// surrounding whitespace.
func firstLine(content []byte) string {
	line := content
	if idx := bytes.IndexByte(content, '\n'); idx >= 0 {
		line = content[:idx]
	}
	return string(bytes.TrimSpace(line))
}
