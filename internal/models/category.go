package models

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Category groups products; Order sets the display sequence.
type Category struct {
	Name          string        `json:"name"          yaml:"name"`
	Slug          string        `json:"slug"          yaml:"slug"`
	Description   string        `json:"description"   yaml:"description"`
	Icon          string        `json:"icon"          yaml:"icon"`
	Image         string        `json:"image"         yaml:"image"`
	Order         int           `json:"order"         yaml:"order"`
	Subcategories []Subcategory `json:"subcategories" yaml:"subcategories"`
	Markdown      `yaml:"-"`
}

type Subcategory struct {
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

func NewCategory() *Category { return &Category{} }

func (c *Category) GetSlug() string     { return c.Slug }
func (c *Category) SetSlug(slug string) { c.Slug = slug }

func (c *Category) Normalize() {
	c.Subcategories = emptyIfNil(c.Subcategories)
}

func (c *Category) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&c.Subcategories, validation.Each(validation.By(func(v any) error {
			sub, _ := v.(Subcategory)
			return validation.ValidateStruct(&sub,
				validation.Field(&sub.Name, validation.Required),
				validation.Field(&sub.Slug, validation.Required),
			)
		}))),
	)
}
