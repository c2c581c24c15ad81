// Package docs reads schema documentation files from disk. A corpus is a
// directory of markdown files under the configured root, addressed by its
// directory name.
package docs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/schemadoc/schemadoc/internal/errors"
)

// defaultReadConcurrency bounds parallel file reads per corpus.
const defaultReadConcurrency = 8

// Document is one documentation file read from a corpus.
type Document struct {
	// Path is the absolute path the file was read from.
	Path string

	// Name is the file name within the corpus directory.
	Name string

	// Content is the raw file content.
	Content []byte
}

// Reader loads documentation corpora from a root directory.
type Reader struct {
	root        string
	extensions  map[string]bool
	concurrency int
}

// ReaderOption customizes a Reader.
type ReaderOption func(*Reader)

// WithExtensions overrides the set of file extensions treated as
// documentation. Extensions include the leading dot.
func WithExtensions(exts ...string) ReaderOption {
	return func(r *Reader) {
		r.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			r.extensions[strings.ToLower(ext)] = true
		}
	}
}

// WithConcurrency bounds the number of files read in parallel.
func WithConcurrency(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewReader creates a Reader rooted at root.
func NewReader(root string, opts ...ReaderOption) *Reader {
	r := &Reader{
		root: root,
		extensions: map[string]bool{
			".md":       true,
			".markdown": true,
			".txt":      true,
		},
		concurrency: defaultReadConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read loads every documentation file of the named corpus, in file name
// order. A missing corpus directory is not an error: it returns an empty
// result so callers can respond with "no documentation". Individual files
// that cannot be read are logged and skipped.
func (r *Reader) Read(ctx context.Context, corpusID string) ([]*Document, error) {
	if err := validateCorpusID(corpusID); err != nil {
		return nil, err
	}

	dir := filepath.Join(r.root, corpusID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("corpus directory not found", "corpus_id", corpusID, "dir", dir)
			return nil, nil
		}
		return nil, errors.IOError("reading corpus directory", err).
			WithDetail("corpus_id", corpusID)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if r.extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}

	// ReadDir returns entries sorted by name, so positions are stable.
	docs := make([]*Document, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, name)
			content, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("skipping unreadable documentation file",
					"corpus_id", corpusID, "path", path, "error", err)
				return nil
			}
			docs[i] = &Document{Path: path, Name: name, Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", corpusID, err)
	}

	result := docs[:0]
	for _, d := range docs {
		if d != nil {
			result = append(result, d)
		}
	}
	slog.Debug("corpus read", "corpus_id", corpusID, "files", len(result))
	return result, nil
}

// validateCorpusID rejects identifiers that could escape the root.
func validateCorpusID(corpusID string) error {
	if strings.TrimSpace(corpusID) == "" {
		return errors.New(errors.ErrCodeInvalidCorpusID, "corpus id is empty", nil)
	}
	if strings.ContainsAny(corpusID, `/\`) || corpusID == "." || corpusID == ".." {
		return errors.New(errors.ErrCodeInvalidCorpusID,
			fmt.Sprintf("corpus id %q must be a plain directory name", corpusID), nil)
	}
	return nil
}
