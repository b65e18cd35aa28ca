package repotest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
)

type invitationRepo struct{ s *Store }

// slugTaken must be called with the lock held.
func (r invitationRepo) slugTaken(slug string, except uuid.UUID) bool {
	if slug == "" {
		return false
	}
	for id, inv := range r.s.invitations {
		if id != except && inv.URLSlug == slug {
			return true
		}
	}
	return false
}

// load must be called with the lock held.
func (r invitationRepo) load(inv *model.Invitation) *model.Invitation {
	cp := *inv
	cp.Template = nil
	if cp.TemplateID != nil {
		if tpl, ok := r.s.templates[*cp.TemplateID]; ok {
			t := *tpl
			cp.Template = &t
		}
	}
	return &cp
}

func (r invitationRepo) Create(_ context.Context, inv *model.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.slugTaken(inv.URLSlug, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	stamp(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	cp := *inv
	cp.Template = nil
	r.s.invitations[inv.ID] = &cp
	return nil
}

func (r invitationRepo) find(match func(*model.Invitation) bool) (*model.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invitations {
		if match(inv) {
			return r.load(inv), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r invitationRepo) GetOwned(_ context.Context, id, userID uuid.UUID) (*model.Invitation, error) {
	return r.find(func(inv *model.Invitation) bool {
		return inv.ID == id && inv.UserID == userID
	})
}

func (r invitationRepo) GetPublished(_ context.Context, id uuid.UUID) (*model.Invitation, error) {
	return r.find(func(inv *model.Invitation) bool {
		return inv.ID == id && inv.Status == model.InvitationStatusPublished
	})
}

func (r invitationRepo) GetPublicBySlug(_ context.Context, slug string) (*model.Invitation, error) {
	return r.find(func(inv *model.Invitation) bool {
		return inv.URLSlug == slug && inv.IsPubliclyVisible()
	})
}

func (r invitationRepo) ListByUser(
	_ context.Context, userID uuid.UUID, page repository.Pagination,
) ([]model.Invitation, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Invitation
	for _, inv := range r.s.invitations {
		if inv.UserID == userID {
			out = append(out, *r.load(inv))
		}
	}
	newestFirst(out, func(i model.Invitation) time.Time { return i.CreatedAt })
	return paginate(out, page), int64(len(out)), nil
}

func (r invitationRepo) Update(_ context.Context, inv *model.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invitations[inv.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if r.slugTaken(inv.URLSlug, inv.ID) {
		return gorm.ErrDuplicatedKey
	}
	inv.UpdatedAt = time.Now().UTC()
	cp := *inv
	cp.Template = nil
	r.s.invitations[inv.ID] = &cp
	return nil
}

func (r invitationRepo) DeleteOwned(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[id]
	if !ok || inv.UserID != userID {
		return false, nil
	}
	delete(r.s.invitations, id)
	for rid, rsvp := range r.s.rsvps {
		if rsvp.InvitationID == id {
			delete(r.s.rsvps, rid)
		}
	}
	for gid, entry := range r.s.guestbooks {
		if entry.InvitationID == id {
			delete(r.s.guestbooks, gid)
		}
	}
	for pid, p := range r.s.payments {
		if p.InvitationID == id {
			delete(r.s.payments, pid)
		}
	}
	return true, nil
}

func (r invitationRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.SlugChecks++
	if r.s.SlugExistsHook != nil {
		return r.s.SlugExistsHook(slug), nil
	}
	return r.slugTaken(slug, uuid.Nil), nil
}

func (r invitationRepo) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.invitations[id]; ok {
		inv.ViewCount++
	}
	return nil
}
