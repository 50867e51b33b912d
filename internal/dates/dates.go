// Package dates resolves Document dates from metadata values or from a
// fallback source such as file modification time.
package dates

import (
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Source supplies a date for a file that carries no date metadata.
type Source interface {
	DateFor(path string) (time.Time, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(path string) (time.Time, error)

// DateFor implements Source.
func (f SourceFunc) DateFor(path string) (time.Time, error) {
	return f(path)
}

// ModTime returns the file's last modification time.
type ModTime struct{}

// DateFor implements Source.
func (ModTime) DateFor(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Parse interprets a free-form date string ("2014-01-01", "Jan 2 2014",
// RFC 1123, ...). Values without a zone are read as local time.
func Parse(value string) (time.Time, error) {
	return dateparse.ParseLocal(strings.TrimSpace(value))
}
