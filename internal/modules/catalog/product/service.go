package product

import (
	"cmp"
	"strings"

	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/models"
	"github.com/homeline/storefront/internal/pkg/query"
)

// Kind is the content directory of products.
const Kind = "products"

// DefaultRelated is the number of related products returned when the caller
// does not ask for a specific count.
const DefaultRelated = 4

type Service struct {
	coll *database.Collection[*models.Product]
}

func NewService(store *database.Store) *Service {
	return &Service{coll: database.NewCollection(store, Kind, models.NewProduct, byName)}
}

func byName(a, b *models.Product) int {
	if c := query.CompareFold(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Slug, b.Slug)
}

// Check reports product files that listings skip, including frontmatter
// with the wrong field types.
func (s *Service) Check() ([]database.Problem, error) { return s.coll.Check() }

// List returns every product, active or not.
func (s *Service) List() ([]*models.Product, error) {
	return s.coll.List()
}

func (s *Service) Get(slug string) (*models.Product, error) {
	return s.coll.Get(slug)
}

// GetActive is Get for public readers: inactive products read as missing.
func (s *Service) GetActive(slug string) (*models.Product, error) {
	p, err := s.coll.Get(slug)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, database.ErrNotFound
	}
	return p, nil
}

// Create derives the slug from the name when it is empty.
func (s *Service) Create(p *models.Product) error {
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = database.Slugify(p.Name)
	}
	return s.coll.Create(p)
}

func (s *Service) Update(slug string, p *models.Product) error {
	return s.coll.Update(slug, p)
}

func (s *Service) Delete(slug string) error {
	return s.coll.Delete(slug)
}

func active(p *models.Product) bool { return p.Active }

func (s *Service) Active() ([]*models.Product, error) {
	return s.coll.Where(active)
}

func (s *Service) Featured() ([]*models.Product, error) {
	return s.coll.Where(active, func(p *models.Product) bool { return p.Featured })
}

func (s *Service) New() ([]*models.Product, error) {
	return s.coll.Where(active, func(p *models.Product) bool { return p.New })
}

func (s *Service) ByCategory(category string) ([]*models.Product, error) {
	return s.coll.Where(active, func(p *models.Product) bool { return p.Category == category })
}

func (s *Service) ByCollection(collection string) ([]*models.Product, error) {
	return s.coll.Where(active, func(p *models.Product) bool { return p.Collection == collection })
}

func (s *Service) ByBrand(brand string) ([]*models.Product, error) {
	return s.coll.Where(active, func(p *models.Product) bool { return p.Brand == brand })
}

// Search matches q case-insensitively against the name, description,
// category, collection and specifications of active products. A blank q
// returns every active product.
func (s *Service) Search(q string) ([]*models.Product, error) {
	return s.coll.Where(active, Matches(q))
}

// Filter returns the active products satisfying every set criterion.
func (s *Service) Filter(c Criteria) ([]*models.Product, error) {
	return s.coll.Where(append([]query.Predicate[*models.Product]{active}, c.Predicates()...)...)
}

// Related returns up to n other active products of the same category.
func (s *Service) Related(slug string, n int) ([]*models.Product, error) {
	if n <= 0 {
		n = DefaultRelated
	}
	p, err := s.GetActive(slug)
	if err != nil {
		return nil, err
	}
	items, err := s.coll.Where(active, func(o *models.Product) bool {
		return o.Slug != p.Slug && o.Category == p.Category
	})
	if err != nil {
		return nil, err
	}
	if len(items) > n {
		items = items[:n]
	}
	return items, nil
}
