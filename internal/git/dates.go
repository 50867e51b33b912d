package git

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	ggit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/mdsite/internal/dates"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// DateSource implements dates.Source from git history.
type DateSource struct {
	fallback dates.Source
	repos    map[string]*repoHandle
}

type repoHandle struct {
	repo *ggit.Repository
	root string
}

// NewDateSource returns a source that consults git history and uses fallback
// for untracked files. A nil fallback selects dates.ModTime.
func NewDateSource(fallback dates.Source) *DateSource {
	if fallback == nil {
		fallback = dates.ModTime{}
	}
	return &DateSource{fallback: fallback, repos: map[string]*repoHandle{}}
}

// DateFor implements dates.Source.
func (s *DateSource) DateFor(path string) (time.Time, error) {
	when, ok, err := s.commitTime(path)
	if err != nil {
		return time.Time{}, err
	}
	if ok {
		return when, nil
	}
	slog.Debug("No commit history for file, using fallback date", logfields.Path(path))
	return s.fallback.DateFor(path)
}

func (s *DateSource) commitTime(path string) (time.Time, bool, error) {
	abs, err := resolve(path)
	if err != nil {
		return time.Time{}, false, err
	}

	h, err := s.open(filepath.Dir(abs))
	if err != nil {
		return time.Time{}, false, err
	}
	if h == nil {
		return time.Time{}, false, nil
	}

	rel, err := filepath.Rel(h.root, abs)
	if err != nil {
		return time.Time{}, false, nil
	}
	rel = filepath.ToSlash(rel)

	iter, err := h.repo.Log(&ggit.LogOptions{FileName: &rel})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("git log %s: %w", rel, err)
	}
	defer iter.Close()

	commit, err := iter.Next()
	if errors.Is(err, io.EOF) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("git log %s: %w", rel, err)
	}
	return commit.Committer.When, true, nil
}

// open returns the repository containing dir, or nil when dir is not inside
// one. Handles are cached per directory.
func (s *DateSource) open(dir string) (*repoHandle, error) {
	if h, ok := s.repos[dir]; ok {
		return h, nil
	}

	repo, err := ggit.PlainOpenWithOptions(dir, &ggit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, ggit.ErrRepositoryNotExists) {
		s.repos[dir] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository for %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no files to date.
		s.repos[dir] = nil
		return nil, nil
	}
	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}

	h := &repoHandle{repo: repo, root: root}
	s.repos[dir] = h
	return h, nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
