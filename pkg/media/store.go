package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocumentStore persists uploaded documents and resolves stored references to
// client-facing URLs.
type DocumentStore interface {
	Save(filename string, content io.Reader) (string, error)
	URL(ref string) string
}

// PlaceholderImage is the fallback reference returned when a profile carries
// no image.
const PlaceholderImage = "assets/images/dummy-profile.png"

type localStore struct {
	dir     string
	baseURL string
}

// NewLocalStore stores documents on local disk under dir and serves them from
// baseURL. The directory is created on first use.
func NewLocalStore(dir, baseURL string) DocumentStore {
	return &localStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *localStore) Save(filename string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create document directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String()[:8], filepath.Ext(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return name, nil
}

func (s *localStore) URL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return s.baseURL + "/" + ref
}

// ResolveImage maps a stored profile image reference to a URL, substituting
// the placeholder when absent.
func ResolveImage(store DocumentStore, ref *string) string {
	if ref == nil || *ref == "" {
		return store.URL(PlaceholderImage)
	}
	return store.URL(*ref)
}
