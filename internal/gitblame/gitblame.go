// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gitblame resolves annotation positions to their authors through
// git blame.
package gitblame

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/pdiddy/deadliner/pkg/types"
)

// Source resolves the author of a source position. The boolean result is
// false when no attribution is available; lookups never fail the pipeline.
type Source interface {
	Lookup(path string, line int) (types.Attribution, bool)
}

// RepoSource blames files in one git working tree at HEAD. Blame results
// are cached per file, since a document usually carries several
// annotations. Lines not yet committed blame to their surrounding commit.
type RepoSource struct {
	repo *git.Repository
	root string

	mu    sync.Mutex
	cache map[string]*git.BlameResult
}

// Open locates the repository containing dir (searching parent directories
// for .git) and returns a blame source rooted at its working tree.
func Open(dir string) (*RepoSource, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree: %w", err)
	}
	return &RepoSource{
		repo:  repo,
		root:  wt.Filesystem.Root(),
		cache: make(map[string]*git.BlameResult),
	}, nil
}

// Lookup blames the file at HEAD and returns the author of the given
// 1-based line.
func (s *RepoSource) Lookup(path string, line int) (types.Attribution, bool) {
	rel, err := s.relPath(path)
	if err != nil {
		return types.Attribution{}, false
	}

	blame, err := s.blame(rel)
	if err != nil {
		return types.Attribution{}, false
	}
	if line < 1 || line > len(blame.Lines) {
		return types.Attribution{}, false
	}

	l := blame.Lines[line-1]
	return types.Attribution{Name: l.AuthorName, Email: l.Author}, true
}

// relPath converts path to the slash-separated form relative to the
// worktree root that go-git expects.
func (s *RepoSource) relPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// blame returns the cached blame result for rel, computing it on first use.
func (s *RepoSource) blame(rel string) (*git.BlameResult, error) {
	s.mu.Lock()
	if cached, ok := s.cache[rel]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	commit, err := s.headCommit()
	if err != nil {
		return nil, err
	}
	result, err := git.Blame(commit, rel)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[rel] = result
	s.mu.Unlock()
	return result, nil
}

func (s *RepoSource) headCommit() (*object.Commit, error) {
	ref, err := s.repo.Head()
	if err != nil {
		return nil, err
	}
	return s.repo.CommitObject(ref.Hash())
}

// defaultConcurrency bounds parallel blame lookups when the configuration
// does not set a limit.
const defaultConcurrency = 8

// Enrich attributes each record in place through src with bounded
// concurrency. Each lookup is independent and read-only; a failed lookup
// leaves that record's Attribution nil without aborting the others.
func Enrich(records []types.AnnotationRecord, src Source, concurrency int) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i := range records {
		wg.Add(1)
		sem <- struct{}{}
		go func(rec *types.AnnotationRecord) {
			defer wg.Done()
			defer func() { <-sem }()
			if attr, ok := src.Lookup(rec.SourcePath, rec.Line); ok {
				rec.Attribution = &attr
			}
		}(&records[i])
	}

	wg.Wait()
}
