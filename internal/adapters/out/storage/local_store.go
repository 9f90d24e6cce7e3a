// Package storage provides blob storage adapters for uploaded document content.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"formation/internal/pkg/errs"
)

// LocalDocumentStore persists document content on the local filesystem under
// a configured root directory. Stored paths are relative to the root, so the
// same path recorded in the database resolves regardless of where the
// service runs.
type LocalDocumentStore struct {
	root string
}

// NewLocalDocumentStore creates a store rooted at the given directory.
func NewLocalDocumentStore(root string) (*LocalDocumentStore, error) {
	if root == "" {
		return nil, errs.NewValueIsRequiredError("root")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &LocalDocumentStore{root: root}, nil
}

// Store writes the content under the given relative path and returns the path
// at which it was stored. Paths escaping the storage root are rejected.
func (s *LocalDocumentStore) Store(ctx context.Context, path string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleaned := filepath.Clean(path)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"path", fmt.Errorf("%q escapes the storage root", path))
	}

	fullPath := filepath.Join(s.root, cleaned)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create storage directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	defer file.Close()

	if _, err = io.Copy(file, content); err != nil {
		return "", fmt.Errorf("write blob content: %w", err)
	}

	return filepath.ToSlash(cleaned), nil
}
