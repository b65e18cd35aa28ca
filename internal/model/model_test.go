package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		ok       bool
	}{
		{PaymentStatusPending, PaymentStatusCompleted, true},
		{PaymentStatusPending, PaymentStatusFailed, true},
		{PaymentStatusPending, PaymentStatusRefunded, false},
		{PaymentStatusCompleted, PaymentStatusRefunded, true},
		{PaymentStatusCompleted, PaymentStatusFailed, false},
		{PaymentStatusFailed, PaymentStatusCompleted, false},
		{PaymentStatusRefunded, PaymentStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestInvitationVisibility(t *testing.T) {
	inv := &Invitation{Status: InvitationStatusDraft, IsPublic: true}
	assert.False(t, inv.IsPubliclyVisible())

	inv.Status = InvitationStatusPublished
	assert.True(t, inv.IsPubliclyVisible())

	inv.IsPublic = false
	assert.False(t, inv.IsPubliclyVisible())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, TemplateCategoryFloral.Valid())
	assert.False(t, TemplateCategory("GOTHIC").Valid())
	assert.True(t, AttendancePending.Valid())
	assert.False(t, AttendanceStatus("MAYBE").Valid())
	assert.True(t, PlanTypePremiumPlus.Valid())
	assert.False(t, PlanType("GOLD").Valid())
}

func TestTemplateSummaryNil(t *testing.T) {
	var tpl *Template
	assert.Nil(t, tpl.Summary())
}
