package product

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/models"
	"github.com/homeline/storefront/internal/pkg/query"
)

// Criteria narrows a product listing. Empty sets and nil flags match
// everything.
type Criteria struct {
	Query       string
	Categories  []string
	Collections []string
	Colors      []string
	Sizes       []string
	Finishes    []string
	Featured    *bool
	New         *bool
}

// Empty reports whether no criterion is set.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Query) == "" &&
		len(c.Categories) == 0 && len(c.Collections) == 0 &&
		len(c.Colors) == 0 && len(c.Sizes) == 0 && len(c.Finishes) == 0 &&
		c.Featured == nil && c.New == nil
}

// Predicates turns the criteria into query predicates. Unset criteria yield
// no predicate.
func (c Criteria) Predicates() []query.Predicate[*models.Product] {
	var preds []query.Predicate[*models.Product]
	if strings.TrimSpace(c.Query) != "" {
		preds = append(preds, Matches(c.Query))
	}
	if len(c.Categories) > 0 {
		preds = append(preds, func(p *models.Product) bool { return query.InSet(c.Categories, p.Category) })
	}
	if len(c.Collections) > 0 {
		preds = append(preds, func(p *models.Product) bool { return query.InSet(c.Collections, p.Collection) })
	}
	if len(c.Colors) > 0 {
		preds = append(preds, func(p *models.Product) bool {
			names := make([]string, len(p.Colors))
			for i, col := range p.Colors {
				names[i] = col.Name
			}
			return query.AnyInSet(c.Colors, names...)
		})
	}
	if len(c.Sizes) > 0 {
		preds = append(preds, func(p *models.Product) bool {
			names := make([]string, len(p.Sizes))
			for i, sz := range p.Sizes {
				names[i] = sz.Name
			}
			return query.AnyInSet(c.Sizes, names...)
		})
	}
	if len(c.Finishes) > 0 {
		preds = append(preds, func(p *models.Product) bool { return query.AnyInSet(c.Finishes, p.Finishes...) })
	}
	if c.Featured != nil {
		want := *c.Featured
		preds = append(preds, func(p *models.Product) bool { return p.Featured == want })
	}
	if c.New != nil {
		want := *c.New
		preds = append(preds, func(p *models.Product) bool { return p.New == want })
	}
	return preds
}

// Matches builds the free-text search predicate. A blank q matches all.
func Matches(q string) query.Predicate[*models.Product] {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	return func(p *models.Product) bool {
		fields := []string{p.Name, p.Content, p.Category, p.Collection}
		for k, v := range p.Specifications {
			fields = append(fields, k, v)
		}
		return query.ContainsFold(q, fields...)
	}
}

// CriteriaFromContext reads the listing criteria from the query string.
// List parameters accept repeated keys and comma separated values.
func CriteriaFromContext(c *gin.Context) Criteria {
	return Criteria{
		Query:       c.Query("q"),
		Categories:  queryList(c, "categories", "category"),
		Collections: queryList(c, "collections", "collection"),
		Colors:      queryList(c, "colors", "color"),
		Sizes:       queryList(c, "sizes", "size_name"),
		Finishes:    queryList(c, "finishes", "finish"),
		Featured:    queryBool(c, "featured"),
		New:         queryBool(c, "new"),
	}
}

func queryList(c *gin.Context, keys ...string) []string {
	var out []string
	for _, key := range keys {
		for _, raw := range c.QueryArray(key) {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					out = append(out, v)
				}
			}
		}
	}
	return out
}

func queryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}
