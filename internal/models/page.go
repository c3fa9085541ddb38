package models

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Page is a static informational page (FAQ, privacy, terms, ...).
type Page struct {
	Title       string `json:"title"       yaml:"title"`
	Slug        string `json:"slug"        yaml:"slug"`
	Description string `json:"description" yaml:"description,omitempty"`
	LastUpdated string `json:"lastUpdated" yaml:"lastUpdated,omitempty"`
	Markdown    `yaml:"-"`
}

func NewPage() *Page { return &Page{} }

func (p *Page) GetSlug() string     { return p.Slug }
func (p *Page) SetSlug(slug string) { p.Slug = slug }
func (p *Page) Normalize()          {}

func (p *Page) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.LastUpdated, validation.Date("2006-01-02")),
	)
}
