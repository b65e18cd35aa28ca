package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
)

type rsvpRepo struct{ s *Store }

func (r rsvpRepo) Reconcile(_ context.Context, rsvp *model.RSVP) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rsvps {
		if existing.InvitationID == rsvp.InvitationID &&
			existing.GuestName == rsvp.GuestName &&
			existing.Phone == rsvp.Phone {
			existing.GuestCount = rsvp.GuestCount
			existing.AttendanceStatus = rsvp.AttendanceStatus
			existing.Message = rsvp.Message
			existing.DietaryRestrictions = rsvp.DietaryRestrictions
			existing.UpdatedAt = time.Now().UTC()
			*rsvp = *existing
			return false, nil
		}
	}
	stamp(&rsvp.ID, &rsvp.CreatedAt, &rsvp.UpdatedAt)
	cp := *rsvp
	r.s.rsvps[rsvp.ID] = &cp
	return true, nil
}

func (r rsvpRepo) ListByInvitation(
	_ context.Context, invitationID uuid.UUID, page repository.Pagination,
) ([]model.RSVP, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.RSVP
	for _, rsvp := range r.s.rsvps {
		if rsvp.InvitationID == invitationID {
			out = append(out, *rsvp)
		}
	}
	newestFirst(out, func(x model.RSVP) time.Time { return x.CreatedAt })
	return paginate(out, page), int64(len(out)), nil
}

func (r rsvpRepo) TallyByStatus(_ context.Context, invitationID uuid.UUID) ([]repository.AttendanceTally, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byStatus := make(map[model.AttendanceStatus]*repository.AttendanceTally)
	for _, rsvp := range r.s.rsvps {
		if rsvp.InvitationID != invitationID {
			continue
		}
		t, ok := byStatus[rsvp.AttendanceStatus]
		if !ok {
			t = &repository.AttendanceTally{AttendanceStatus: rsvp.AttendanceStatus}
			byStatus[rsvp.AttendanceStatus] = t
		}
		t.Count++
		t.Guests += rsvp.GuestCount
	}
	out := make([]repository.AttendanceTally, 0, len(byStatus))
	for _, t := range byStatus {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendanceStatus < out[j].AttendanceStatus })
	return out, nil
}

type guestbookRepo struct{ s *Store }

func (r guestbookRepo) Create(_ context.Context, entry *model.Guestbook) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invitations[entry.InvitationID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	stamp(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	cp := *entry
	r.s.guestbooks[entry.ID] = &cp
	return nil
}

func (r guestbookRepo) ListPublic(
	_ context.Context, invitationID uuid.UUID, page repository.Pagination,
) ([]model.Guestbook, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Guestbook
	for _, entry := range r.s.guestbooks {
		if entry.InvitationID == invitationID && entry.IsPublic {
			out = append(out, *entry)
		}
	}
	newestFirst(out, func(x model.Guestbook) time.Time { return x.CreatedAt })
	return paginate(out, page), int64(len(out)), nil
}

func (r guestbookRepo) Delete(_ context.Context, id, invitationID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry, ok := r.s.guestbooks[id]
	if !ok || entry.InvitationID != invitationID {
		return false, nil
	}
	delete(r.s.guestbooks, id)
	return true, nil
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) Create(_ context.Context, payment *model.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.OrderID == payment.OrderID {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	cp := *payment
	r.s.payments[payment.ID] = &cp
	return nil
}

func (r paymentRepo) GetByOrderIDForUpdate(_ context.Context, orderID string) (*model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.OrderID == orderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r paymentRepo) ListByUser(
	_ context.Context, userID uuid.UUID, page repository.Pagination,
) ([]model.Payment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Payment
	for _, p := range r.s.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	newestFirst(out, func(x model.Payment) time.Time { return x.CreatedAt })
	return paginate(out, page), int64(len(out)), nil
}

func (r paymentRepo) Update(_ context.Context, payment *model.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[payment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	payment.UpdatedAt = time.Now().UTC()
	cp := *payment
	r.s.payments[payment.ID] = &cp
	return nil
}

func (r paymentRepo) MarkInvitationPaid(_ context.Context, invitationID uuid.UUID, plan model.PlanType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.invitations[invitationID]; ok {
		inv.IsPaid = true
		inv.PlanType = plan
	}
	return nil
}
