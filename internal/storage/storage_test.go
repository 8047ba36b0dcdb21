package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root, "http://app/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "documents/clerk1/will.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, "http://app/files/documents/clerk1/will.pdf", url)

	onDisk := filepath.Join(root, "documents", "clerk1", "will.pdf")
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err, "blob not written")
	assert.Equal(t, "content", string(data))

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err), "blob still on disk after delete")
}

func TestFileStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://app")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "http://app/files/documents/none.pdf"))
}

func TestFileStore_PutSanitizesKey(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root, "http://app")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://app/files/"), "url = %q", url)

	// The cleaned key must stay inside the root.
	_, err = os.Stat(filepath.Join(root, "etc", "passwd"))
	assert.NoError(t, err, "expected traversal to be flattened into the root")
}
