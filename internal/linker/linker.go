// Package linker computes the links rendered pages use to reach each other.
package linker

import (
	"net/url"
	"path/filepath"
)

// RelativeURL returns the slash-separated path from the directory containing
// from to target. The base name of target is always kept.
//
//	RelativeURL("a/b/c", "a/e") == "b/c"
func RelativeURL(target, from string) string {
	target, from = absolute(target), absolute(from)
	targetDir, base := filepath.Split(target)

	rel, err := filepath.Rel(filepath.Dir(from), filepath.Clean(targetDir))
	if err != nil {
		return filepath.ToSlash(target)
	}
	if rel == "." {
		return base
	}
	return filepath.ToSlash(rel) + "/" + base
}

// absolute anchors p at the working directory so that ".." segments in either
// argument of RelativeURL resolve against real directories.
func absolute(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// AbsoluteURL resolves RelativeURL(target, from) against base following
// RFC 3986 reference resolution. A base without a trailing slash loses its
// last path segment, exactly as a browser would resolve it.
func AbsoluteURL(target, from, base string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	// Built directly so a colon in the first segment is not taken as a scheme.
	ref := &url.URL{Path: RelativeURL(target, from)}
	return baseURL.ResolveReference(ref).String(), nil
}
