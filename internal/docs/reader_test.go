package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemadoc/schemadoc/internal/errors"
)

func writeCorpus(t *testing.T, root, corpusID string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, corpusID)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestReader_Read(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "billing", map[string]string{
		"orders.md":   "# Table: orders",
		"users.md":    "# Table: users",
		"payments.md": "# Table: payments",
	})

	docs, err := NewReader(root).Read(context.Background(), "billing")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// File name order.
	assert.Equal(t, "orders.md", docs[0].Name)
	assert.Equal(t, "payments.md", docs[1].Name)
	assert.Equal(t, "users.md", docs[2].Name)
	assert.Equal(t, []byte("# Table: users"), docs[2].Content)
}

func TestReader_Read_MissingCorpus(t *testing.T) {
	docs, err := NewReader(t.TempDir()).Read(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestReader_Read_InvalidCorpusID(t *testing.T) {
	r := NewReader(t.TempDir())

	for _, id := range []string{"", "  ", "..", "a/b", `a\b`} {
		_, err := r.Read(context.Background(), id)
		assert.ErrorIs(t, err, errors.New(errors.ErrCodeInvalidCorpusID, "", nil), "id %q", id)
	}
}

func TestReader_Read_FiltersExtensions(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "shop", map[string]string{
		"users.md":        "users",
		"notes.txt":       "notes",
		"legacy.markdown": "legacy",
		"schema.sql":      "ignored",
		"README":          "ignored",
	})

	docs, err := NewReader(root).Read(context.Background(), "shop")
	require.NoError(t, err)
	require.Len(t, docs, 3)
}

func TestReader_Read_SkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "shop", map[string]string{
		"users.md": "users",
	})
	// A dangling symlink passes the directory and extension filters but
	// fails ReadFile, exercising the warn-and-skip branch.
	require.NoError(t, os.Symlink(
		filepath.Join(root, "shop", "missing"),
		filepath.Join(root, "shop", "broken.md")))

	docs, err := NewReader(root).Read(context.Background(), "shop")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "users.md", docs[0].Name)
}

func TestReader_Read_SkipsSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "shop", map[string]string{"users.md": "users"})
	writeCorpus(t, root, filepath.Join("shop", "archive"), map[string]string{})

	docs, err := NewReader(root).Read(context.Background(), "shop")
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestReader_WithExtensions(t *testing.T) {
	root := t.TempDir()
	writeCorpus(t, root, "shop", map[string]string{
		"users.md":  "users",
		"notes.rst": "notes",
	})

	r := NewReader(root, WithExtensions(".rst"))
	docs, err := r.Read(context.Background(), "shop")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes.rst", docs[0].Name)
}
