package database

import (
	"errors"
	"fmt"

	"github.com/homeline/storefront/internal/pkg/frontmatter"
)

var (
	// ErrNotFound means the requested slug has no file.
	ErrNotFound = errors.New("document not found")
	// ErrMalformed matches every *MalformedError.
	ErrMalformed = frontmatter.ErrMalformed
	// ErrSlugConflict is returned when a create or rename targets an existing slug.
	ErrSlugConflict = errors.New("slug already exists")
	// ErrPartialRename is returned when the content of a renamed document was
	// saved but the file could not be moved to its new slug.
	ErrPartialRename = errors.New("document saved but rename failed")
	// ErrInvalidSlug is returned for identifiers that are not URL-safe.
	ErrInvalidSlug = errors.New("invalid slug")
)

// MalformedError reports a document whose frontmatter could not be decoded.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed document %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Problem is one unreadable document found by Check.
type Problem struct {
	Kind  string `json:"kind"`
	Slug  string `json:"slug"`
	Error string `json:"error"`
}
