package media

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps uploaded product images on local disk and serves them
// under a URL prefix. Filenames are random so uploads never collide
// or overwrite each other.
type Store struct {
	dir       string
	urlPrefix string
	logger    *slog.Logger
}

func NewStore(dir, urlPrefix string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		logger:    logger,
	}, nil
}

// Save writes an uploaded file to disk and returns its public URL path.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Remove deletes the file behind a URL previously returned by Save.
// Failures are logged and swallowed: a stale image on disk must not
// block the catalog operation that triggered the removal.
func (s *Store) Remove(url string) {
	if url == "" || !strings.HasPrefix(url, s.urlPrefix+"/") {
		return
	}
	name := path.Base(url)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("remove media file failed", "url", url, "error", err)
	}
}

// Handler serves stored files under the URL prefix.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(s.urlPrefix+"/", http.FileServer(http.Dir(s.dir)))
}
