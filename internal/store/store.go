// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store persists fetched chart SVGs and per-user summaries. Keys
// are slash-separated relative paths built by the naming helpers; each
// backend maps a key to its own location string.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrPersistence is returned when an artifact cannot be written.
var ErrPersistence = errors.New("persistence failed")

// Store writes artifacts under a key and reports where they landed.
type Store interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// Committer is implemented by stores that group writes into a recorded
// unit, such as a git commit.
type Committer interface {
	Commit(ctx context.Context, message string) error
}

// FileStore writes artifacts beneath a root directory on an afero
// filesystem. Locations are root-joined paths.
type FileStore struct {
	fs   afero.Fs
	root string
}

// NewFileStore returns a FileStore rooted at root on fs.
func NewFileStore(fs afero.Fs, root string) *FileStore {
	return &FileStore{fs: fs, root: root}
}

// NewOSFileStore returns a FileStore on the host filesystem.
func NewOSFileStore(root string) *FileStore {
	return NewFileStore(afero.NewOsFs(), root)
}

// Put writes data to root/key, creating parent directories.
func (s *FileStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	rel, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.root, rel)
	if err := s.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrPersistence, filepath.Dir(full), err)
	}
	if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrPersistence, full, err)
	}
	return full, nil
}

// cleanKey converts a slash key to a local relative path and rejects keys
// that would escape the root.
func cleanKey(key string) (string, error) {
	rel := filepath.FromSlash(path.Clean(key))
	if key == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: invalid key %q", ErrPersistence, key)
	}
	return rel, nil
}

// Exists reports whether key has been written to the file store.
func (s *FileStore) Exists(key string) (bool, error) {
	rel, err := cleanKey(key)
	if err != nil {
		return false, err
	}
	_, err = s.fs.Stat(filepath.Join(s.root, rel))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
