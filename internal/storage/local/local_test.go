package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kathir-sudo/CodeAlpha-Simple-E-commerce-Store/internal/storage"
)

func TestUpload_WritesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "/uploads")
	require.NoError(t, err)

	result, err := store.Upload(context.Background(), &storage.UploadInput{
		Key:         "abc-123.jpg",
		ContentType: "image/jpeg",
		Size:        5,
		Data:        strings.NewReader("hello"),
	})

	require.NoError(t, err)
	assert.Equal(t, "abc-123.jpg", result.Key)
	assert.Equal(t, "/uploads/abc-123.jpg", result.URL)

	data, err := os.ReadFile(filepath.Join(dir, "abc-123.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestUpload_RejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "/uploads")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), &storage.UploadInput{
		Key:  "../escape.jpg",
		Data: strings.NewReader("nope"),
	})

	assert.Error(t, err)
}

func TestDelete_RemovesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "/uploads")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), &storage.UploadInput{
		Key:  "gone.png",
		Data: strings.NewReader("bytes"),
	})
	require.NoError(t, err)

	err = store.Delete(context.Background(), "gone.png")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "gone.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDelete_MissingFileIsNoError(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "/uploads")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.jpg"))
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := New(dir, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
