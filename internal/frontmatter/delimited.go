package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

const (
	yamlDelimiter = "---"
	tomlDelimiter = "+++"
)

var (
	yamlFormat = frontmatter.NewFormat(yamlDelimiter, yamlDelimiter, yaml.Unmarshal)
	tomlFormat = frontmatter.NewFormat(tomlDelimiter, tomlDelimiter, toml.Unmarshal)
)

var errNotMapping = errors.New("front matter is not a mapping")

// extractYAML treats a leading "---" as front matter only when the next line
// is not blank. Errors are reported only for blocks that open with a key line;
// anything else is left to the Markdown body.
func extractYAML(content []byte) (Metadata, []byte, Format, error) {
	_, rest := splitLine(content)
	next, _ := splitLine(rest)
	opening := strings.TrimRight(string(next), "\r\n")
	if strings.TrimSpace(opening) == "" {
		return Metadata{}, content, FormatNone, nil
	}

	meta, body, err := extractDelimited(content, yamlDelimiter)
	if err != nil {
		if metaKeyLine.MatchString(opening) {
			return nil, nil, FormatYAML, err
		}
		return Metadata{}, content, FormatNone, nil
	}
	return meta, body, FormatYAML, nil
}

// extractDelimited parses a delimited YAML or TOML block and flattens its
// values to strings.
func extractDelimited(content []byte, delim string) (Metadata, []byte, error) {
	if !hasClosingDelimiter(content, delim) {
		return nil, nil, ErrMissingClosingDelimiter
	}

	format := yamlFormat
	if delim == tomlDelimiter {
		format = tomlFormat
	}

	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(content), &raw, format)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s front matter: %w", formatName(delim), err)
	}
	if raw == nil && delim == yamlDelimiter {
		return nil, nil, errNotMapping
	}

	meta := Metadata{}
	for key, value := range raw {
		for _, s := range flatten(value) {
			meta.Add(key, s)
		}
	}
	return meta, body, nil
}

// hasClosingDelimiter reports whether a line equal to delim follows the
// opening line.
func hasClosingDelimiter(content []byte, delim string) bool {
	_, rest := splitLine(content)
	for len(rest) > 0 {
		var line []byte
		line, rest = splitLine(rest)
		if string(bytes.TrimSpace(line)) == delim {
			return true
		}
	}
	return false
}

// flatten converts a decoded front matter value into string values. Lists
// contribute one value per element; nested maps are rendered as "k=v" pairs.
func flatten(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{""}
	case string:
		return []string{v}
	case time.Time:
		return []string{v.Format(time.RFC3339)}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, flatten(item)...)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+strings.Join(flatten(v[k]), ","))
		}
		return []string{strings.Join(parts, " ")}
	default:
		return []string{fmt.Sprint(v)}
	}
}

func formatName(delim string) string {
	if delim == tomlDelimiter {
		return "toml"
	}
	return "yaml"
}
