package brand

import (
	"strings"

	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/models"
	"github.com/homeline/storefront/internal/pkg/query"
)

// Kind is the content directory of brands.
const Kind = "brands"

type Service struct {
	coll *database.Collection[*models.Brand]
}

func NewService(store *database.Store) *Service {
	return &Service{coll: database.NewCollection(store, Kind, models.NewBrand, func(a, b *models.Brand) int {
		return query.CompareFold(a.Name, b.Name)
	})}
}

// List returns every brand sorted by name.
func (s *Service) List() ([]*models.Brand, error) { return s.coll.List() }

func (s *Service) Get(slug string) (*models.Brand, error) { return s.coll.Get(slug) }

func (s *Service) Exists(slug string) (bool, error) { return s.coll.Exists(slug) }

// Check reports documents that listings skip.
func (s *Service) Check() ([]database.Problem, error) { return s.coll.Check() }

// ByCountry returns the brands from country, compared case-insensitively.
func (s *Service) ByCountry(country string) ([]*models.Brand, error) {
	return s.coll.Where(func(b *models.Brand) bool { return strings.EqualFold(b.Country, country) })
}

func (s *Service) Create(b *models.Brand) error {
	if strings.TrimSpace(b.Slug) == "" {
		b.Slug = database.Slugify(b.Name)
	}
	return s.coll.Create(b)
}

func (s *Service) Update(slug string, b *models.Brand) error { return s.coll.Update(slug, b) }

func (s *Service) Delete(slug string) error { return s.coll.Delete(slug) }
