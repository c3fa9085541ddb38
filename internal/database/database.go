// Package database treats a directory tree of markdown files as a small
// document database. Each kind (products, categories, ...) is a directory
// under the root and each document is a {slug}.md file inside it.
//
// There is no locking and no cache: every read goes to disk, and two writers
// on the same slug race at the filesystem level (last write wins).
package database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/homeline/storefront/internal/pkg/frontmatter"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// Ext is the file extension of stored documents.
	Ext = ".md"

	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// RenderFunc turns a markdown body into HTML.
type RenderFunc func(markdown string) string

// Document is one decoded file.
type Document struct {
	Kind    string
	Slug    string
	Meta    *yaml.Node
	Content string
	HTML    string
	ModTime time.Time
}

// Decode maps the frontmatter onto v. Fields of v that the frontmatter does
// not mention keep their current value.
func (d *Document) Decode(v any) error {
	if err := d.Meta.Decode(v); err != nil {
		return &MalformedError{Path: filepath.Join(d.Kind, d.Slug+Ext), Err: fmt.Errorf("%w: %v", frontmatter.ErrMalformed, err)}
	}
	return nil
}

// Metadata returns the frontmatter as a generic map.
func (d *Document) Metadata() (map[string]any, error) {
	out := map[string]any{}
	if err := d.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Store reads and writes documents below a root directory.
type Store struct {
	root   string
	logger *zap.Logger
	render RenderFunc
}

// Open creates the root directory if needed and returns a store on it.
// A nil render leaves Document.HTML empty; a nil logger discards logs.
func Open(root string, logger *zap.Logger, render RenderFunc) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("content root is empty")
	}
	if err := os.MkdirAll(root, defaultDirPerm); err != nil {
		return nil, fmt.Errorf("create content root %q: %w", root, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{root: root, logger: logger, render: render}, nil
}

// Root returns the content root directory.
func (s *Store) Root() string { return s.root }

// Render runs the store's markdown renderer.
func (s *Store) Render(markdown string) string {
	if s.render == nil {
		return ""
	}
	return s.render(markdown)
}

func (s *Store) kindDir(kind string) (string, error) {
	if !ValidSlug(kind) {
		return "", fmt.Errorf("%w: kind %q", ErrInvalidSlug, kind)
	}
	return filepath.Join(s.root, kind), nil
}

func (s *Store) path(kind, slug string) (string, error) {
	dir, err := s.kindDir(kind)
	if err != nil {
		return "", err
	}
	if !ValidSlug(slug) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return filepath.Join(dir, slug+Ext), nil
}

// List returns every readable document of kind in filename order. A missing
// directory yields an empty list. Unreadable documents are logged and skipped.
func (s *Store) List(kind string) ([]*Document, error) {
	slugs, err := s.slugs(kind)
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(slugs))
	for _, slug := range slugs {
		doc, err := s.Get(kind, slug)
		if err != nil {
			s.logger.Warn("skip unreadable document",
				zap.String("kind", kind),
				zap.String("slug", slug),
				zap.Error(err),
			)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// slugs lists the stems of the *.md files of kind. Files whose stem is not a
// valid slug are logged and ignored.
func (s *Store) slugs(kind string) ([]string, error) {
	dir, err := s.kindDir(kind)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != Ext {
			continue
		}
		slug := strings.TrimSuffix(name, Ext)
		if !ValidSlug(slug) {
			s.logger.Warn("ignore document with invalid slug", zap.String("kind", kind), zap.String("file", name))
			continue
		}
		out = append(out, slug)
	}
	return out, nil
}

// Get loads one document.
func (s *Store) Get(kind, slug string) (*Document, error) {
	path, err := s.path(kind, slug)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s/%s: %w", kind, slug, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s/%s: %w", kind, slug, err)
	}
	meta, body, err := frontmatter.Decode(raw)
	if err != nil {
		return nil, &MalformedError{Path: filepath.Join(kind, slug+Ext), Err: err}
	}

	doc := &Document{Kind: kind, Slug: slug, Meta: meta, Content: body}
	if info, err := os.Stat(path); err == nil {
		doc.ModTime = info.ModTime()
	}
	doc.HTML = s.Render(body)
	return doc, nil
}

// Exists reports whether kind/slug has a file.
func (s *Store) Exists(kind, slug string) (bool, error) {
	path, err := s.path(kind, slug)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Write encodes meta and body into kind/slug, replacing any previous file.
// The kind directory is created when missing.
func (s *Store) Write(kind, slug string, meta any, body string) error {
	path, err := s.path(kind, slug)
	if err != nil {
		return err
	}
	data, err := frontmatter.Encode(meta, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), defaultDirPerm); err != nil {
		return fmt.Errorf("create %s directory: %w", kind, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s/%s: %w", kind, slug, err)
	}
	return nil
}

// Move saves meta and body under oldSlug and then renames the file to
// newSlug. When the rename fails the new content stays under oldSlug and the
// returned error matches ErrPartialRename.
func (s *Store) Move(kind, oldSlug, newSlug string, meta any, body string) error {
	if oldSlug == newSlug {
		return s.Write(kind, newSlug, meta, body)
	}
	oldPath, err := s.path(kind, oldSlug)
	if err != nil {
		return err
	}
	newPath, err := s.path(kind, newSlug)
	if err != nil {
		return err
	}

	exists, err := s.Exists(kind, oldSlug)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s/%s: %w", kind, oldSlug, ErrNotFound)
	}
	if taken, err := s.Exists(kind, newSlug); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("%s/%s: %w", kind, newSlug, ErrSlugConflict)
	}

	if err := s.Write(kind, oldSlug, meta, body); err != nil {
		return err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		s.logger.Error("rename left document under old slug",
			zap.String("kind", kind),
			zap.String("from", oldSlug),
			zap.String("to", newSlug),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s/%s -> %s: %w", ErrPartialRename, kind, oldSlug, newSlug, err)
	}
	return nil
}

// Delete removes kind/slug. Deleting a missing document is not an error.
func (s *Store) Delete(kind, slug string) error {
	path, err := s.path(kind, slug)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s/%s: %w", kind, slug, err)
	}
	return nil
}

// Check decodes every document of kind and reports the ones that fail.
func (s *Store) Check(kind string) ([]Problem, error) {
	slugs, err := s.slugs(kind)
	if err != nil {
		return nil, err
	}
	problems := []Problem{}
	for _, slug := range slugs {
		if _, err := s.Get(kind, slug); err != nil {
			problems = append(problems, Problem{Kind: kind, Slug: slug, Error: err.Error()})
		}
	}
	return problems, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place so readers never observe a half-written document.
func writeFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+name+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, defaultFilePerm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
