package models

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Collection is a curated product line (e.g. "Terrazzo Classics").
type Collection struct {
	Name        string `json:"name"        yaml:"name"`
	Slug        string `json:"slug"        yaml:"slug"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image"       yaml:"image"`
	Order       int    `json:"order"       yaml:"order"`
	Markdown    `yaml:"-"`
}

func NewCollection() *Collection { return &Collection{} }

func (c *Collection) GetSlug() string     { return c.Slug }
func (c *Collection) SetSlug(slug string) { c.Slug = slug }
func (c *Collection) Normalize()          {}

func (c *Collection) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 120)),
	)
}
