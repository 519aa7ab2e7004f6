package media

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), "/media", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func upload(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t)

	file, header := upload(t, "rocket.png", []byte("image-data"))
	defer file.Close()
	first, err := store.Save(file, header)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first, "/media/"))
	require.True(t, strings.HasSuffix(first, ".png"))

	file2, header2 := upload(t, "rocket.png", []byte("image-data"))
	defer file2.Close()
	second, err := store.Save(file2, header2)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	store := newTestStore(t)

	file, header := upload(t, "payload.exe", []byte("nope"))
	defer file.Close()
	_, err := store.Save(file, header)
	require.Error(t, err)
}

func TestRemoveIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "/media", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	file, header := upload(t, "sparkler.jpg", []byte("image-data"))
	defer file.Close()
	url, err := store.Save(file, header)
	require.NoError(t, err)

	store.Remove(url)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	// removing again, or junk, must not panic
	store.Remove(url)
	store.Remove("")
	store.Remove("/elsewhere/file.png")
}

func TestRemoveIgnoresForeignPrefix(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "/media", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	name := filepath.Join(dir, "keep.png")
	require.NoError(t, os.WriteFile(name, []byte("keep"), 0o644))

	store.Remove("/static/keep.png")
	_, err = os.Stat(name)
	require.NoError(t, err)
}
