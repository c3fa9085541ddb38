package database

import (
	"fmt"
	"slices"
	"strings"

	"github.com/homeline/storefront/internal/pkg/query"
	"go.uber.org/zap"
)

// Record is a typed document. Implementations are pointer types whose yaml
// tags describe the frontmatter schema.
type Record interface {
	GetSlug() string
	SetSlug(slug string)
	Text() string
	SetText(content, html string)
	// Normalize replaces absent optional fields (nil slices and maps) with
	// their empty values.
	Normalize()
}

// Validator is implemented by records that check themselves before a write.
type Validator interface {
	Validate() error
}

// Collection maps one kind of the store to the record type T.
type Collection[T Record] struct {
	store *Store
	kind  string
	fresh func() T
	cmp   func(a, b T) int
}

// NewCollection binds kind to T. fresh returns a record pre-filled with the
// defaults for fields older documents may lack; cmp orders List results and
// may be nil to keep filename order.
func NewCollection[T Record](store *Store, kind string, fresh func() T, cmp func(a, b T) int) *Collection[T] {
	return &Collection[T]{store: store, kind: kind, fresh: fresh, cmp: cmp}
}

// Kind returns the directory name of the collection.
func (c *Collection[T]) Kind() string { return c.kind }

// Store returns the underlying document store.
func (c *Collection[T]) Store() *Store { return c.store }

func (c *Collection[T]) decode(doc *Document) (T, error) {
	rec := c.fresh()
	if err := doc.Decode(rec); err != nil {
		var zero T
		return zero, err
	}
	rec.SetSlug(doc.Slug)
	rec.SetText(doc.Content, doc.HTML)
	rec.Normalize()
	return rec, nil
}

// List loads every record, sorted with the collection comparator. The sort is
// stable so equal keys keep filename order.
func (c *Collection[T]) List() ([]T, error) {
	docs, err := c.store.List(c.kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := c.decode(doc)
		if err != nil {
			c.store.logger.Warn("skip document with invalid schema",
				zap.String("kind", c.kind),
				zap.String("slug", doc.Slug),
				zap.Error(err),
			)
			continue
		}
		out = append(out, rec)
	}
	if c.cmp != nil {
		slices.SortStableFunc(out, c.cmp)
	}
	return out, nil
}

// Check reports the documents List would skip: files the store cannot read
// and frontmatter that does not decode into T.
func (c *Collection[T]) Check() ([]Problem, error) {
	problems, err := c.store.Check(c.kind)
	if err != nil {
		return nil, err
	}
	docs, err := c.store.List(c.kind)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if _, err := c.decode(doc); err != nil {
			problems = append(problems, Problem{Kind: c.kind, Slug: doc.Slug, Error: err.Error()})
		}
	}
	slices.SortFunc(problems, func(a, b Problem) int { return strings.Compare(a.Slug, b.Slug) })
	return problems, nil
}

// Where lists the collection and keeps the records matching every predicate.
func (c *Collection[T]) Where(preds ...query.Predicate[T]) ([]T, error) {
	all, err := c.List()
	if err != nil {
		return nil, err
	}
	return query.Where(all, preds...), nil
}

// Get loads one record.
func (c *Collection[T]) Get(slug string) (T, error) {
	doc, err := c.store.Get(c.kind, slug)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.decode(doc)
}

// Exists reports whether slug is taken.
func (c *Collection[T]) Exists(slug string) (bool, error) {
	return c.store.Exists(c.kind, slug)
}

func (c *Collection[T]) prepare(rec T) error {
	if !ValidSlug(rec.GetSlug()) {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, rec.GetSlug())
	}
	rec.Normalize()
	if v, ok := any(rec).(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Create writes a new record. It fails with ErrSlugConflict when the slug is
// already taken and leaves the existing document untouched.
func (c *Collection[T]) Create(rec T) error {
	if err := c.prepare(rec); err != nil {
		return err
	}
	slug := rec.GetSlug()
	taken, err := c.store.Exists(c.kind, slug)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%s/%s: %w", c.kind, slug, ErrSlugConflict)
	}
	if err := c.store.Write(c.kind, slug, rec, rec.Text()); err != nil {
		return err
	}
	rec.SetText(rec.Text(), c.store.Render(rec.Text()))
	return nil
}

// Update replaces the record stored at oldSlug. An empty slug on rec keeps
// oldSlug. A different slug renames the document and fails with
// ErrSlugConflict when the new slug belongs to another document.
func (c *Collection[T]) Update(oldSlug string, rec T) error {
	if !ValidSlug(oldSlug) {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, oldSlug)
	}
	exists, err := c.store.Exists(c.kind, oldSlug)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s/%s: %w", c.kind, oldSlug, ErrNotFound)
	}
	if rec.GetSlug() == "" {
		rec.SetSlug(oldSlug)
	}
	if err := c.prepare(rec); err != nil {
		return err
	}

	newSlug := rec.GetSlug()
	if newSlug == oldSlug {
		err = c.store.Write(c.kind, oldSlug, rec, rec.Text())
	} else {
		err = c.store.Move(c.kind, oldSlug, newSlug, rec, rec.Text())
	}
	if err != nil {
		return err
	}
	rec.SetText(rec.Text(), c.store.Render(rec.Text()))
	return nil
}

// Delete removes slug; a missing document is not an error.
func (c *Collection[T]) Delete(slug string) error {
	return c.store.Delete(c.kind, slug)
}
