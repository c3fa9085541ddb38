package category

import (
	"cmp"
	"strings"

	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/models"
)

// Kind is the content directory of categories.
const Kind = "categories"

type Service struct {
	coll *database.Collection[*models.Category]
}

func NewService(store *database.Store) *Service {
	return &Service{coll: database.NewCollection(store, Kind, models.NewCategory, byOrder)}
}

// byOrder sorts ascending by order; ties keep filename order.
func byOrder(a, b *models.Category) int { return cmp.Compare(a.Order, b.Order) }

// List returns every category sorted by order.
func (s *Service) List() ([]*models.Category, error) {
	return s.coll.List()
}

func (s *Service) Get(slug string) (*models.Category, error) {
	return s.coll.Get(slug)
}

func (s *Service) Exists(slug string) (bool, error) {
	return s.coll.Exists(slug)
}

// Check reports documents that listings skip.
func (s *Service) Check() ([]database.Problem, error) {
	return s.coll.Check()
}

// Create derives the slug from the name when it is empty.
func (s *Service) Create(cat *models.Category) error {
	if strings.TrimSpace(cat.Slug) == "" {
		cat.Slug = database.Slugify(cat.Name)
	}
	for i, sub := range cat.Subcategories {
		if strings.TrimSpace(sub.Slug) == "" {
			cat.Subcategories[i].Slug = database.Slugify(sub.Name)
		}
	}
	return s.coll.Create(cat)
}

func (s *Service) Update(slug string, cat *models.Category) error {
	return s.coll.Update(slug, cat)
}

func (s *Service) Delete(slug string) error {
	return s.coll.Delete(slug)
}
