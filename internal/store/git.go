// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/afero"
)

const (
	authorName  = "go-dcharts"
	authorEmail = "noreply@go-dcharts"
)

// GitStore writes artifacts into the working tree of a git repository and
// stages them. Commit records everything staged since the previous commit,
// which may include files written by concurrent requests.
type GitStore struct {
	files *FileStore
	repo  *gogit.Repository

	mu     sync.Mutex
	staged []string
}

// OpenGitStore opens the repository at root, initializing one when root is
// not yet a repository.
func OpenGitStore(root string) (*GitStore, error) {
	repo, err := gogit.PlainOpen(root)
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		if err := afero.NewOsFs().MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrPersistence, root, err)
		}
		repo, err = gogit.PlainInit(root, false)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening git archive %s: %v", ErrPersistence, root, err)
	}
	return &GitStore{files: NewOSFileStore(root), repo: repo}, nil
}

// Put writes data to the working tree and stages it.
func (s *GitStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	loc, err := s.files.Put(ctx, key, data)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wt, err := s.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: getting worktree: %v", ErrPersistence, err)
	}
	rel := path.Clean(key)
	if _, err := wt.Add(rel); err != nil {
		return "", fmt.Errorf("%w: staging %s: %v", ErrPersistence, rel, err)
	}
	s.staged = append(s.staged, rel)
	return loc, nil
}

// Commit records the staged artifacts. It is a no-op when nothing changed,
// for example when a request rewrote identical files.
func (s *GitStore) Commit(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.staged) == 0 {
		return nil
	}
	files := s.staged
	s.staged = nil

	wt, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: getting worktree: %v", ErrPersistence, err)
	}
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("%w: getting status: %v", ErrPersistence, err)
	}
	if !hasStaged(status) {
		return nil
	}

	_, err = wt.Commit(CommitMessage(message, files), &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: committing: %v", ErrPersistence, err)
	}
	return nil
}

func hasStaged(status gogit.Status) bool {
	for _, st := range status {
		if st.Staging != gogit.Unmodified && st.Staging != gogit.Untracked {
			return true
		}
	}
	return false
}
