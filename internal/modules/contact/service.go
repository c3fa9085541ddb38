package contact

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/models"
	"github.com/homeline/storefront/internal/pkg/mail"
	"go.uber.org/zap"
)

// Kind is the content directory of contact messages.
const Kind = "messages"

const (
	slugTimeLayout = "20060102-150405"
	maxBodyLength  = 5000
)

// Submission is the public contact form payload.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Product string `json:"product"`
	Message string `json:"message"`
}

func (s *Submission) normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Product = strings.TrimSpace(s.Product)
	s.Message = strings.TrimSpace(s.Message)
}

func (s Submission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&s.Email, validation.Required, is.EmailFormat),
		validation.Field(&s.Phone, validation.Length(0, 40)),
		validation.Field(&s.Subject, validation.Length(0, 200)),
		validation.Field(&s.Product, validation.When(s.Product != "", validation.By(func(any) error {
			if !database.ValidSlug(s.Product) {
				return validation.NewError("validation_product_slug", "must be a product slug")
			}
			return nil
		}))),
		validation.Field(&s.Message, validation.Required, validation.Length(1, maxBodyLength)),
	)
}

// Notifier forwards a stored message to the shop inbox.
type Notifier interface {
	SendContactNotify(ctx context.Context, to []string, data mail.ContactNotifyData) error
}

type Options struct {
	SiteName   string
	SiteURL    string
	Recipients []string
	Logger     *zap.Logger
}

type Service struct {
	coll     *database.Collection[*models.Message]
	notifier Notifier
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

// NewService stores messages in store. A nil notifier keeps messages on disk
// only.
func NewService(store *database.Store, notifier Notifier, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		coll:     database.NewCollection(store, Kind, models.NewMessage, newestFirst),
		notifier: notifier,
		opts:     opts,
		logger:   logger.Named("contact"),
		now:      time.Now,
	}
}

// newestFirst relies on slugs starting with the creation timestamp.
func newestFirst(a, b *models.Message) int { return cmp.Compare(b.Slug, a.Slug) }

// Submit validates and stores a submission, then notifies the shop. A failed
// notification is logged; the message stays stored.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Message, error) {
	sub.normalize()
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if sub.Subject == "" {
		sub.Subject = "Contact form"
	}

	now := s.now().UTC()
	msg := &models.Message{
		Slug:     newSlug(now),
		Name:     sub.Name,
		Email:    sub.Email,
		Phone:    sub.Phone,
		Subject:  sub.Subject,
		Product:  sub.Product,
		Created:  now.Format(time.RFC3339),
		Markdown: models.Markdown{Content: sub.Message},
	}
	if err := s.coll.Create(msg); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}
	s.logger.Info("message received", zap.String("slug", msg.Slug), zap.String("subject", msg.Subject))

	if s.notifier != nil && len(s.opts.Recipients) > 0 {
		if err := s.notifier.SendContactNotify(ctx, s.opts.Recipients, s.notifyData(msg)); err != nil {
			s.logger.Warn("contact notification failed", zap.String("slug", msg.Slug), zap.Error(err))
		}
	}
	return msg, nil
}

func (s *Service) notifyData(msg *models.Message) mail.ContactNotifyData {
	data := mail.ContactNotifyData{
		SiteName: s.opts.SiteName,
		Name:     msg.Name,
		Email:    msg.Email,
		Phone:    msg.Phone,
		Subject:  msg.Subject,
		Body:     msg.Content,
		Product:  msg.Product,
		Created:  msg.Created,
	}
	if msg.Product != "" && s.opts.SiteURL != "" {
		data.ProductURL = s.opts.SiteURL + "/products/" + msg.Product
	}
	return data
}

func newSlug(t time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return t.Format(slugTimeLayout) + "-" + id[:8]
}

// List returns every message, newest first. unreadOnly drops read ones.
func (s *Service) List(unreadOnly bool) ([]*models.Message, error) {
	if unreadOnly {
		return s.coll.Where(func(m *models.Message) bool { return !m.Read })
	}
	return s.coll.List()
}

func (s *Service) Get(slug string) (*models.Message, error) { return s.coll.Get(slug) }

// Check reports message files that listings skip.
func (s *Service) Check() ([]database.Problem, error) { return s.coll.Check() }

// MarkRead sets the read flag.
func (s *Service) MarkRead(slug string, read bool) (*models.Message, error) {
	msg, err := s.coll.Get(slug)
	if err != nil {
		return nil, err
	}
	msg.Read = read
	if err := s.coll.Update(slug, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) Delete(slug string) error { return s.coll.Delete(slug) }

// PruneRead deletes read messages created before cutoff and returns how many
// were removed.
func (s *Service) PruneRead(cutoff time.Time) (int, error) {
	items, err := s.coll.Where(func(m *models.Message) bool {
		if !m.Read {
			return false
		}
		created, err := time.Parse(time.RFC3339, m.Created)
		return err == nil && created.Before(cutoff)
	})
	if err != nil {
		return 0, err
	}
	for _, m := range items {
		if err := s.coll.Delete(m.Slug); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}
