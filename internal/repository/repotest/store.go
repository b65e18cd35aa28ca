// Package repotest provides in-memory implementations of the repository
// interfaces for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
)

// Store holds every table in memory and hands out repositories backed by it.
type Store struct {
	mu sync.Mutex

	users       map[uuid.UUID]*model.User
	templates   map[uuid.UUID]*model.Template
	invitations map[uuid.UUID]*model.Invitation
	rsvps       map[uuid.UUID]*model.RSVP
	guestbooks  map[uuid.UUID]*model.Guestbook
	payments    map[uuid.UUID]*model.Payment

	// SlugExistsHook, when set, overrides the slug existence check.
	SlugExistsHook func(slug string) bool
	// SlugChecks counts SlugExists calls.
	SlugChecks int
	// Transactions counts WithinTransaction calls.
	Transactions int
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]*model.User),
		templates:   make(map[uuid.UUID]*model.Template),
		invitations: make(map[uuid.UUID]*model.Invitation),
		rsvps:       make(map[uuid.UUID]*model.RSVP),
		guestbooks:  make(map[uuid.UUID]*model.Guestbook),
		payments:    make(map[uuid.UUID]*model.Payment),
	}
}

func (s *Store) Users() repository.UserRepository             { return userRepo{s} }
func (s *Store) Templates() repository.TemplateRepository     { return templateRepo{s} }
func (s *Store) Invitations() repository.InvitationRepository { return invitationRepo{s} }
func (s *Store) RSVPs() repository.RSVPRepository             { return rsvpRepo{s} }
func (s *Store) Guestbooks() repository.GuestbookRepository   { return guestbookRepo{s} }
func (s *Store) Payments() repository.PaymentRepository       { return paymentRepo{s} }
func (s *Store) Transactor() repository.Transactor            { return transactor{s} }

// Invitation returns a copy of the stored invitation, or nil.
func (s *Store) Invitation(id uuid.UUID) *model.Invitation {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[id]
	if !ok {
		return nil
	}
	cp := *inv
	return &cp
}

// RSVPCount returns the number of stored RSVPs for an invitation.
func (s *Store) RSVPCount(invitationID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rsvps {
		if r.InvitationID == invitationID {
			n++
		}
	}
	return n
}

// Template returns a copy of the stored template, or nil.
func (s *Store) Template(id uuid.UUID) *model.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.templates[id]
	if !ok {
		return nil
	}
	cp := *tpl
	return &cp
}

func stamp(id *uuid.UUID, createdAt, updatedAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func paginate[T any](items []T, page repository.Pagination) []T {
	off, lim := page.Offset(), page.Limit()
	if off >= len(items) {
		return []T{}
	}
	end := off + lim
	if end > len(items) {
		end = len(items)
	}
	return items[off:end]
}

func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}

type transactor struct{ s *Store }

func (t transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.s.mu.Lock()
	t.s.Transactions++
	t.s.mu.Unlock()
	return fn(ctx)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r userRepo) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r userRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}
