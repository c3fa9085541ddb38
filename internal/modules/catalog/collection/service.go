package collection

import (
	"cmp"
	"strings"

	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/models"
)

// Kind is the content directory of collections.
const Kind = "collections"

type Service struct {
	coll *database.Collection[*models.Collection]
}

func NewService(store *database.Store) *Service {
	return &Service{coll: database.NewCollection(store, Kind, models.NewCollection, func(a, b *models.Collection) int {
		return cmp.Compare(a.Order, b.Order)
	})}
}

func (s *Service) List() ([]*models.Collection, error) { return s.coll.List() }

func (s *Service) Get(slug string) (*models.Collection, error) { return s.coll.Get(slug) }

func (s *Service) Exists(slug string) (bool, error) { return s.coll.Exists(slug) }

// Check reports documents that listings skip.
func (s *Service) Check() ([]database.Problem, error) { return s.coll.Check() }

func (s *Service) Create(col *models.Collection) error {
	if strings.TrimSpace(col.Slug) == "" {
		col.Slug = database.Slugify(col.Name)
	}
	return s.coll.Create(col)
}

func (s *Service) Update(slug string, col *models.Collection) error { return s.coll.Update(slug, col) }

func (s *Service) Delete(slug string) error { return s.coll.Delete(slug) }
