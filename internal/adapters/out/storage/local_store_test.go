package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"formation/internal/adapters/out/storage"
	"formation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalDocumentStore_EmptyRoot(t *testing.T) {
	_, err := storage.NewLocalDocumentStore("")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewLocalDocumentStore_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")

	_, err := storage.NewLocalDocumentStore(root)

	require.NoError(t, err)
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalDocumentStore_Store_WritesContent(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewLocalDocumentStore(root)
	require.NoError(t, err)

	path := "orders/abc/ARTICLES_OF_ORGANIZATION_1700000000000_articles.pdf"
	stored, err := store.Store(t.Context(), path, strings.NewReader("pdf bytes"))

	require.NoError(t, err)
	assert.Equal(t, path, stored)

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
}

func TestLocalDocumentStore_Store_OverwritesExisting(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewLocalDocumentStore(root)
	require.NoError(t, err)

	path := "orders/abc/receipt.pdf"
	_, err = store.Store(t.Context(), path, strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Store(t.Context(), path, strings.NewReader("second"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestLocalDocumentStore_Store_RejectsEscapingPaths(t *testing.T) {
	store, err := storage.NewLocalDocumentStore(t.TempDir())
	require.NoError(t, err)

	testCases := []struct {
		name string
		path string
	}{
		{name: "parent traversal", path: "../outside.pdf"},
		{name: "nested traversal", path: "orders/../../outside.pdf"},
		{name: "absolute path", path: "/etc/passwd"},
		{name: "empty path", path: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, storeErr := store.Store(t.Context(), tc.path, strings.NewReader("x"))

			require.Error(t, storeErr)
			assert.ErrorIs(t, storeErr, errs.ErrValueIsInvalid)
		})
	}
}

func TestLocalDocumentStore_Store_CancelledContext(t *testing.T) {
	store, err := storage.NewLocalDocumentStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = store.Store(ctx, "orders/abc/file.pdf", strings.NewReader("x"))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
