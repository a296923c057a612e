package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "http://localhost:8080/storage")

	ref, err := store.Save("report.pdf", strings.NewReader("document body"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(ref, ".pdf"))

	content, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "document body", string(content))
}

func TestLocalStoreSaveUniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080/storage")

	ref1, err := store.Save("a.pdf", strings.NewReader("one"))
	require.NoError(t, err)
	ref2, err := store.Save("a.pdf", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2)
}

func TestLocalStoreURL(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080/storage/")

	assert.Equal(t, "http://localhost:8080/storage/doc.pdf", store.URL("doc.pdf"))
	assert.Equal(t, "", store.URL(""))
	assert.Equal(t, "https://cdn.example.com/img.png", store.URL("https://cdn.example.com/img.png"))
}

func TestResolveImage(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080/storage")

	img := "photo.png"
	assert.Equal(t, "http://localhost:8080/storage/photo.png", ResolveImage(store, &img))

	empty := ""
	assert.Equal(t, "http://localhost:8080/storage/"+PlaceholderImage, ResolveImage(store, &empty))
	assert.Equal(t, "http://localhost:8080/storage/"+PlaceholderImage, ResolveImage(store, nil))
}
