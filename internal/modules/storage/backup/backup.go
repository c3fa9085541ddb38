package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/homeline/storefront/internal/modules/processing/markdown"
	"go.uber.org/zap"
)

const filenameLayout = "2006-01-02T15-04-05"

var filenamePattern = regexp.MustCompile(`^storefront-\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}\.zip$`)

// Uploader stores a finished archive off site.
type Uploader interface {
	Upload(ctx context.Context, key string, payload []byte, contentType string) error
}

// Item describes one local archive.
type Item struct {
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
}

// Artifact is the outcome of one backup run.
type Artifact struct {
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	Documents int    `json:"documents"`
	Size      int    `json:"size"`
	// Key is the object key of the upload, empty when nothing was uploaded.
	Key string `json:"key,omitempty"`
}

type Options struct {
	// Dir receives the archives.
	Dir string
	// Keep bounds the number of local archives; 0 keeps all.
	Keep int
	// Uploader is optional.
	Uploader Uploader
	// Prefix is prepended to object keys.
	Prefix string
	Logger *zap.Logger
}

// Service zips the content tree into timestamped archives.
type Service struct {
	root     string
	dir      string
	keep     int
	uploader Uploader
	prefix   string
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(contentRoot string, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		root:     contentRoot,
		dir:      opts.Dir,
		keep:     opts.Keep,
		uploader: opts.Uploader,
		prefix:   strings.Trim(opts.Prefix, "/"),
		logger:   logger.Named("backup"),
		now:      time.Now,
	}
}

// Run writes a new archive, prunes old ones and uploads the result when an
// uploader is configured. A failed upload still leaves the local archive.
func (s *Service) Run(ctx context.Context) (*Artifact, error) {
	buf := &bytes.Buffer{}
	count, err := markdown.WriteArchive(s.root, buf)
	if err != nil {
		return nil, fmt.Errorf("archive content: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	now := s.now()
	filename := "storefront-" + now.Format(filenameLayout) + ".zip"
	full := filepath.Join(s.dir, filename)
	if err := os.WriteFile(full, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	art := &Artifact{Filename: filename, Path: full, Documents: count, Size: buf.Len()}
	s.logger.Info("backup written", zap.String("file", filename), zap.Int("documents", count))

	if err := s.prune(); err != nil {
		s.logger.Warn("prune backups", zap.Error(err))
	}

	if s.uploader != nil {
		key := s.objectKey(now, filename)
		if err := s.uploader.Upload(ctx, key, buf.Bytes(), "application/zip"); err != nil {
			return art, fmt.Errorf("upload %s: %w", key, err)
		}
		art.Key = key
		s.logger.Info("backup uploaded", zap.String("key", key))
	}
	return art, nil
}

// objectKey follows {prefix}/{Y}/{m}/{filename}.
func (s *Service) objectKey(now time.Time, filename string) string {
	parts := []string{now.Format("2006"), now.Format("01"), filename}
	if s.prefix != "" {
		parts = append([]string{s.prefix}, parts...)
	}
	return path.Join(parts...)
}

// List returns local archives, newest first.
func (s *Service) List() ([]Item, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Item{}, nil
		}
		return nil, err
	}
	items := []Item{}
	for _, e := range entries {
		if e.IsDir() || !filenamePattern.MatchString(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		created, _ := time.ParseInLocation(filenameLayout, strings.TrimSuffix(strings.TrimPrefix(e.Name(), "storefront-"), ".zip"), time.Local)
		items = append(items, Item{Filename: e.Name(), Size: info.Size(), Created: created})
	}
	// The timestamped names sort chronologically.
	sort.Slice(items, func(i, j int) bool { return items[i].Filename > items[j].Filename })
	return items, nil
}

// Path resolves a listed archive name; other names are rejected.
func (s *Service) Path(filename string) (string, error) {
	if !filenamePattern.MatchString(filename) {
		return "", fmt.Errorf("invalid backup name %q", filename)
	}
	full := filepath.Join(s.dir, filename)
	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}

func (s *Service) Delete(filename string) error {
	full, err := s.Path(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.Remove(full)
}

func (s *Service) prune() error {
	if s.keep <= 0 {
		return nil
	}
	items, err := s.List()
	if err != nil {
		return err
	}
	for _, item := range items[min(len(items), s.keep):] {
		if err := os.Remove(filepath.Join(s.dir, item.Filename)); err != nil {
			return err
		}
	}
	return nil
}
