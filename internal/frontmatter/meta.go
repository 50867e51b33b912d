package frontmatter

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	metaKeyLine  = regexp.MustCompile(`^[ ]{0,3}([A-Za-z0-9_-]+):\s*(.*)$`)
	metaMoreLine = regexp.MustCompile(`^[ ]{4,}(.*)$`)
)

// extractMeta reads "Key: value" lines from the top of content.
//
// The block ends at the first blank line, which is consumed, or at the first
// line that is neither a key line nor a continuation of one, which stays in
// the body. A continuation line (indented four or more spaces) adds another
// value to the previous key.
func extractMeta(content []byte) (Metadata, []byte) {
	meta := Metadata{}
	rest := content
	key := ""

	for len(rest) > 0 {
		line, next := splitLine(rest)
		text := strings.TrimRight(string(line), "\r")

		if strings.TrimSpace(text) == "" {
			rest = next
			break
		}

		if m := metaKeyLine.FindStringSubmatch(text); m != nil {
			key = strings.ToLower(m[1])
			meta.Add(key, strings.TrimSpace(m[2]))
			rest = next
			continue
		}

		if m := metaMoreLine.FindStringSubmatch(text); m != nil && key != "" {
			meta[key] = append(meta[key], strings.TrimSpace(m[1]))
			rest = next
			continue
		}

		break
	}

	if len(meta) == 0 {
		return meta, content
	}
	return meta, rest
}

// splitLine returns the first line of b including its newline, and the rest.
func splitLine(b []byte) (line, rest []byte) {
	if idx := bytes.IndexByte(b, '\n'); idx >= 0 {
		return b[:idx+1], b[idx+1:]
	}
	return b, nil
}
