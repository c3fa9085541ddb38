package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Brand is a manufacturer.
type Brand struct {
	Name        string `json:"name"        yaml:"name"`
	Slug        string `json:"slug"        yaml:"slug"`
	Description string `json:"description" yaml:"description"`
	Country     string `json:"country"     yaml:"country"`
	Logo        string `json:"logo"        yaml:"logo"`
	Website     string `json:"website"     yaml:"website"`
	Markdown    `yaml:"-"`
}

func NewBrand() *Brand { return &Brand{} }

func (b *Brand) GetSlug() string     { return b.Slug }
func (b *Brand) SetSlug(slug string) { b.Slug = slug }
func (b *Brand) Normalize()          {}

func (b *Brand) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&b.Website, is.URL),
	)
}
