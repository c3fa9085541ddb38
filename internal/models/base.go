package models

// Markdown carries the body of a document and its rendered HTML. It is never
// written to the frontmatter.
type Markdown struct {
	Content string `json:"content"`
	HTML    string `json:"html"`
}

func (m *Markdown) Text() string { return m.Content }

func (m *Markdown) SetText(content, html string) {
	m.Content = content
	m.HTML = html
}

// Image represents an embedded image reference.
type Image struct {
	URL     string `json:"url"     yaml:"url"`
	Alt     string `json:"alt"     yaml:"alt"`
	Primary bool   `json:"primary" yaml:"primary"`
}

// emptyIfNil returns s, or an empty non-nil slice when s is nil.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
