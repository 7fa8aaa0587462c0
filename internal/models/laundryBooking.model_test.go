package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableActions(t *testing.T) {
	tests := []struct {
		name          string
		status        BookingStatus
		pendingAction PendingAction
		role          Role
		want          []BookingAction
	}{
		{
			name:   "approved booking exposes only the voucher to tenants",
			status: BookingApproved,
			role:   RoleTenant,
			want:   []BookingAction{ActionViewVoucher},
		},
		{
			name:   "approved booking exposes only the voucher to admins",
			status: BookingApproved,
			role:   RoleAdmin,
			want:   []BookingAction{ActionViewVoucher},
		},
		{
			name:   "rejected booking exposes nothing",
			status: BookingRejected,
			role:   RoleTenant,
			want:   nil,
		},
		{
			name:          "pending admin exposes no tenant actions",
			status:        BookingProposed,
			pendingAction: PendingAdmin,
			role:          RoleTenant,
			want:          nil,
		},
		{
			name:          "pending admin exposes admin actions",
			status:        BookingProposed,
			pendingAction: PendingAdmin,
			role:          RoleAdmin,
			want:          []BookingAction{ActionApprove, ActionReject, ActionPropose},
		},
		{
			name:          "pending user exposes tenant actions",
			status:        BookingCounterProposal,
			pendingAction: PendingUser,
			role:          RoleTenant,
			want:          []BookingAction{ActionAccept, ActionReject, ActionCounterPropose},
		},
		{
			name:          "pending user exposes no admin actions",
			status:        BookingCounterProposal,
			pendingAction: PendingUser,
			role:          RoleAdmin,
			want:          nil,
		},
		{
			name:          "superadmin acts as admin",
			status:        BookingProposed,
			pendingAction: PendingAdmin,
			role:          RoleSuperadmin,
			want:          []BookingAction{ActionApprove, ActionReject, ActionPropose},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			booking := &LaundryBooking{
				Status:        tc.status,
				PendingAction: tc.pendingAction,
			}
			assert.Equal(t, tc.want, booking.AvailableActions(tc.role))
		})
	}
}

func TestToResponseActionsNeverNil(t *testing.T) {
	booking := &LaundryBooking{Status: BookingRejected}
	response := booking.ToResponse(RoleTenant)

	assert.NotNil(t, response.Actions)
	assert.Empty(t, response.Actions)
}

func TestValidTimeSlot(t *testing.T) {
	assert.True(t, ValidTimeSlot("08:00-10:00"))
	assert.True(t, ValidTimeSlot("18:00-20:00"))
	assert.False(t, ValidTimeSlot("20:00-22:00"))
	assert.False(t, ValidTimeSlot(""))
}
