package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveAndRemoveRoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	url, err := store.Save("documents", "transcript.pdf", strings.NewReader("pdf bytes"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/documents/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	path := filepath.Join(store.BaseDir, strings.TrimPrefix(url, "/"))
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))

	assert.NoError(t, store.Remove(url))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	first, err := store.Save("documents", "cv.pdf", strings.NewReader("one"))
	assert.NoError(t, err)
	second, err := store.Save("documents", "cv.pdf", strings.NewReader("two"))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemoveMissingFileIsNoOp(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	assert.NoError(t, store.Remove("/documents/never-existed.pdf"))
}

func TestRemoveIgnoresTraversalAndSentinels(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	assert.NoError(t, store.Remove("../../etc/passwd"))
	assert.NoError(t, store.Remove(""))
	assert.NoError(t, store.Remove("Not Applicable"))
}

func TestSaveSanitizesFilename(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	url, err := store.Save("documents", "weird name!!.pdf", strings.NewReader("x"))
	assert.NoError(t, err)
	assert.NotContains(t, url, " ")
	assert.NotContains(t, url, "!")
}
