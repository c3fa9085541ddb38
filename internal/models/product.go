package models

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Product is a catalog item stored under products/{slug}.md. The markdown
// body is the long description.
type Product struct {
	Name           string            `json:"name"           yaml:"name"`
	Slug           string            `json:"slug"           yaml:"slug"`
	Category       string            `json:"category"       yaml:"category"`
	Subcategory    string            `json:"subcategory"    yaml:"subcategory,omitempty"`
	Brand          string            `json:"brand"          yaml:"brand,omitempty"`
	Collection     string            `json:"collection"     yaml:"collection,omitempty"`
	Featured       bool              `json:"featured"       yaml:"featured"`
	New            bool              `json:"new"            yaml:"new"`
	Active         bool              `json:"active"         yaml:"active"`
	Images         []Image           `json:"images"         yaml:"images"`
	Specifications map[string]string `json:"specifications" yaml:"specifications"`
	Colors         []Color           `json:"colors"         yaml:"colors"`
	Sizes          []Size            `json:"sizes"          yaml:"sizes"`
	Finishes       []string          `json:"finishes"       yaml:"finishes"`
	Markdown       `yaml:"-"`
}

// Color is a color variant.
type Color struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex"  yaml:"hex"`
}

// Size is a size variant; Dimensions is free text such as "60x60 cm".
type Size struct {
	Name       string `json:"name"       yaml:"name"`
	Dimensions string `json:"dimensions" yaml:"dimensions,omitempty"`
}

// NewProduct returns a product with the defaults applied to documents that
// predate a field.
func NewProduct() *Product {
	return &Product{Active: true}
}

func (p *Product) GetSlug() string     { return p.Slug }
func (p *Product) SetSlug(slug string) { p.Slug = slug }

func (p *Product) Normalize() {
	p.Images = emptyIfNil(p.Images)
	p.Colors = emptyIfNil(p.Colors)
	p.Sizes = emptyIfNil(p.Sizes)
	p.Finishes = emptyIfNil(p.Finishes)
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
}

// PrimaryImage returns the first image flagged primary, falling back to the
// first image. Having several primaries is tolerated.
func (p *Product) PrimaryImage() (Image, bool) {
	for _, img := range p.Images {
		if img.Primary {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return Image{}, false
}

func (p *Product) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Images, validation.Each(validation.By(func(v any) error {
			img, _ := v.(Image)
			return validation.Validate(img.URL, validation.Required.Error("image url is required"))
		}))),
		validation.Field(&p.Colors, validation.Each(validation.By(func(v any) error {
			c, _ := v.(Color)
			return validation.ValidateStruct(&c,
				validation.Field(&c.Name, validation.Required),
				validation.Field(&c.Hex, validation.When(c.Hex != "", validation.Match(hexColorPattern).Error("must be a hex color like #aabbcc"))),
			)
		}))),
		validation.Field(&p.Sizes, validation.Each(validation.By(func(v any) error {
			s, _ := v.(Size)
			return validation.Validate(s.Name, validation.Required.Error("size name is required"))
		}))),
	)
}
