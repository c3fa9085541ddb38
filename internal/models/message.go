package models

// Message is a contact form submission kept under messages/{slug}.md. The
// markdown body holds the message text.
type Message struct {
	Slug    string `json:"slug"    yaml:"slug"`
	Name    string `json:"name"    yaml:"name"`
	Email   string `json:"email"   yaml:"email"`
	Phone   string `json:"phone"   yaml:"phone,omitempty"`
	Subject string `json:"subject" yaml:"subject"`
	Product string `json:"product" yaml:"product,omitempty"`
	Created string `json:"created" yaml:"created"`
	Read    bool   `json:"read"    yaml:"read"`
	Markdown `yaml:"-"`
}

func NewMessage() *Message { return &Message{} }

func (m *Message) GetSlug() string     { return m.Slug }
func (m *Message) SetSlug(slug string) { m.Slug = slug }
func (m *Message) Normalize()          {}
