package announcement

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// IdentityDirectory reports whether a user identifier belongs to a known
// user. It is the only authorization check this module performs.
type IdentityDirectory interface {
	Exists(ctx context.Context, identifier string) (bool, error)
}

type CreateRequest struct {
	Message        string
	StartDate      *string
	ExpirationDate string
	CreatedBy      string
}

// UpdateRequest carries a partial update. Nil fields are left unchanged.
type UpdateRequest struct {
	Message        *string
	StartDate      *string
	ExpirationDate *string
}

type Service interface {
	// ListActive returns the announcements whose date window includes today.
	// It never fails: internal errors are logged and an empty list returned,
	// since the endpoint it backs is public and must not error outward.
	ListActive(ctx context.Context) []*Announcement
	ListAll(ctx context.Context, actor string) ([]*Announcement, error)
	Create(ctx context.Context, req CreateRequest) (*Announcement, error)
	Update(ctx context.Context, id, actor string, req UpdateRequest) (*Announcement, error)
	Delete(ctx context.Context, id, actor string) error
}

type service struct {
	repo  Repository
	users IdentityDirectory

	// now supplies the current time so date-boundary behavior is testable.
	now func() time.Time
}

// Option configures the service.
type Option func(*service)

// WithNowFunc overrides the clock used to compute "today".
func WithNowFunc(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewService(repo Repository, users IdentityDirectory, opts ...Option) Service {
	s := &service{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListActive(ctx context.Context) []*Announcement {
	all, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("failed to fetch active announcements: %v", err)
		return []*Announcement{}
	}

	today := s.now().Format(DateLayout)

	active := make([]*Announcement, 0, len(all))
	for _, a := range all {
		started := a.StartDate == nil || *a.StartDate <= today
		notExpired := a.ExpirationDate != "" && a.ExpirationDate >= today
		if started && notExpired {
			active = append(active, a)
		}
	}
	return active
}

func (s *service) ListAll(ctx context.Context, actor string) ([]*Announcement, error) {
	if err := s.authorize(ctx, actor); err != nil {
		return nil, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements failed: %w", err)
	}

	// Newest first. Zero timestamps sort last.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return all, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Announcement, error) {
	if err := s.authorize(ctx, req.CreatedBy); err != nil {
		return nil, err
	}

	if err := validateMessage(req.Message); err != nil {
		return nil, err
	}
	if err := validateWindow(req.StartDate, req.ExpirationDate); err != nil {
		return nil, err
	}

	a := &Announcement{
		Message:        req.Message,
		StartDate:      normalizeDate(req.StartDate),
		ExpirationDate: req.ExpirationDate,
		CreatedBy:      req.CreatedBy,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create announcement failed: %w", err)
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id, actor string, req UpdateRequest) (*Announcement, error) {
	if err := s.authorize(ctx, actor); err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Message != nil {
		if err := validateMessage(*req.Message); err != nil {
			return nil, err
		}
	}

	// The window invariant is re-checked against the effective post-update
	// values: the supplied field if present, the stored one otherwise.
	effStart := existing.StartDate
	if req.StartDate != nil {
		effStart = req.StartDate
	}
	effExpiration := existing.ExpirationDate
	if req.ExpirationDate != nil {
		effExpiration = *req.ExpirationDate
	}
	if err := validateWindow(effStart, effExpiration); err != nil {
		return nil, err
	}

	fields := UpdateFields{
		Message:        req.Message,
		StartDate:      req.StartDate,
		ExpirationDate: req.ExpirationDate,
	}
	if fields.Message == nil && fields.StartDate == nil && fields.ExpirationDate == nil {
		return existing, nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id, actor string) error {
	if err := s.authorize(ctx, actor); err != nil {
		return err
	}

	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	return s.repo.Delete(ctx, id)
}

// authorize resolves the actor through the identity directory. An unknown
// actor fails before any validation or mutation takes place.
func (s *service) authorize(ctx context.Context, actor string) error {
	ok, err := s.users.Exists(ctx, actor)
	if err != nil {
		return fmt.Errorf("identity lookup failed: %w", err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

func validateMessage(message string) error {
	n := utf8.RuneCountInString(message)
	if n < 1 || n > 500 {
		return ErrMessageLength
	}
	return nil
}

// validateWindow checks that both dates parse as ISO calendar dates and that
// the start does not come after the expiration. An empty start means the
// announcement is active immediately.
func validateWindow(start *string, expiration string) error {
	if _, err := time.Parse(DateLayout, expiration); err != nil {
		return ErrInvalidDateFormat
	}
	if start == nil || *start == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, *start); err != nil {
		return ErrInvalidDateFormat
	}
	if *start > expiration {
		return ErrStartAfterExpiration
	}
	return nil
}

// normalizeDate maps an empty string to nil so "no start date" has a single
// stored representation.
func normalizeDate(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	return d
}
