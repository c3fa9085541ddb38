package health

import (
	"errors"
	"time"

	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/modules/catalog/brand"
	"github.com/homeline/storefront/internal/modules/catalog/category"
	"github.com/homeline/storefront/internal/modules/catalog/collection"
	"github.com/homeline/storefront/internal/modules/catalog/product"
	"github.com/homeline/storefront/internal/modules/contact"
	"github.com/homeline/storefront/internal/modules/content/page"
)

// checker is implemented by every content service.
type checker interface {
	Check() ([]database.Problem, error)
}

// Reference is a product field that names a record which does not exist.
type Reference struct {
	Product string `json:"product"`
	Field   string `json:"field"`
	Target  string `json:"target"`
}

// Report is the result of one content audit.
type Report struct {
	Problems  []database.Problem `json:"problems"`
	Dangling  []Reference        `json:"dangling"`
	CheckedAt time.Time          `json:"checked_at"`
}

// Healthy reports whether the audit found nothing.
func (r *Report) Healthy() bool { return len(r.Problems) == 0 && len(r.Dangling) == 0 }

// Auditor checks documents for decode errors and products for references
// to missing categories, collections and brands.
type Auditor struct {
	store *database.Store
	now   func() time.Time
}

func NewAuditor(store *database.Store) *Auditor {
	return &Auditor{store: store, now: time.Now}
}

// Audit decodes every document into its record type and then resolves the taxonomy references of the listed products.
func (a *Auditor) Audit() (*Report, error) {
	report := &Report{Problems: []database.Problem{}, Dangling: []Reference{}, CheckedAt: a.now()}

	products := product.NewService(a.store)
	categories := category.NewService(a.store)
	collections := collection.NewService(a.store)
	brands := brand.NewService(a.store)
	pages := page.NewService(a.store)
	messages := contact.NewService(a.store, nil, contact.Options{})

	for _, svc := range []checker{products, categories, collections, brands, pages, messages} {
		problems, err := svc.Check()
		if err != nil {
			return nil, err
		}
		report.Problems = append(report.Problems, problems...)
	}

	listed, err := products.List()
	if err != nil {
		return nil, err
	}

	for _, p := range listed {
		checks := []struct {
			field  string
			target string
			exists func(string) (bool, error)
		}{
			{"category", p.Category, categories.Exists},
			{"collection", p.Collection, collections.Exists},
			{"brand", p.Brand, brands.Exists},
		}
		for _, chk := range checks {
			if chk.target == "" {
				continue
			}
			ok, err := chk.exists(chk.target)
			if err != nil && !errors.Is(err, database.ErrInvalidSlug) {
				return nil, err
			}
			if !ok {
				report.Dangling = append(report.Dangling, Reference{Product: p.Slug, Field: chk.field, Target: chk.target})
			}
		}
	}
	return report, nil
}
