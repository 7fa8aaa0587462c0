package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingApproved        BookingStatus = "approved"
	BookingRejected        BookingStatus = "rejected"
	BookingProposed        BookingStatus = "proposed"
	BookingCounterProposal BookingStatus = "counter_proposal"
)

// PendingAction flags which side has to act next on a booking.
type PendingAction string

const (
	PendingUser  PendingAction = "user"
	PendingAdmin PendingAction = "admin"
	PendingNone  PendingAction = ""
)

type BookingAction string

const (
	ActionApprove        BookingAction = "approve"
	ActionReject         BookingAction = "reject"
	ActionPropose        BookingAction = "propose"
	ActionCounterPropose BookingAction = "counter_propose"
	ActionAccept         BookingAction = "accept"
	ActionViewVoucher    BookingAction = "view_voucher"
)

var BookingStatusBadges = map[BookingStatus]StatusBadge{
	BookingApproved:        {Label: "Aprobada", Color: "green"},
	BookingRejected:        {Label: "Rechazada", Color: "red"},
	BookingProposed:        {Label: "Propuesta", Color: "blue"},
	BookingCounterProposal: {Label: "Contrapropuesta", Color: "orange"},
}

// TimeSlots are the bookable laundry-room windows.
var TimeSlots = []string{
	"08:00-10:00",
	"10:00-12:00",
	"12:00-14:00",
	"14:00-16:00",
	"16:00-18:00",
	"18:00-20:00",
}

func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

type LaundryBooking struct {
	BaseUUIDModel
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	User   *User     `gorm:"foreignKey:UserID"        json:"user,omitempty"`

	Date     datatypes.Date `gorm:"type:date;index"             json:"date"`
	TimeSlot string         `gorm:"type:text"                   json:"timeSlot"`
	Status   BookingStatus  `gorm:"type:text;default:'proposed'" json:"status"`

	PendingAction PendingAction `gorm:"type:text;default:'admin'" json:"pendingAction"`

	// Counter-offer fields, set while a reschedule is being negotiated.
	ProposedDate     *datatypes.Date `gorm:"type:date" json:"proposedDate,omitempty"`
	ProposedTimeSlot *string         `gorm:"type:text" json:"proposedTimeSlot,omitempty"`

	VoucherPath string `gorm:"type:text" json:"voucherPath,omitempty"`
	Comment     string `gorm:"type:text" json:"comment,omitempty"`
}

// AvailableActions is the static action table per role. An approved booking
// only exposes its voucher; a rejected one exposes nothing; otherwise actions
// belong exclusively to the side named by PendingAction.
func (b *LaundryBooking) AvailableActions(role Role) []BookingAction {
	switch b.Status {
	case BookingApproved:
		return []BookingAction{ActionViewVoucher}
	case BookingRejected:
		return nil
	}

	if role == RoleTenant {
		if b.PendingAction != PendingUser {
			return nil
		}
		return []BookingAction{ActionAccept, ActionReject, ActionCounterPropose}
	}

	if b.PendingAction != PendingAdmin {
		return nil
	}
	return []BookingAction{ActionApprove, ActionReject, ActionPropose}
}

func (b *LaundryBooking) Badge() StatusBadge {
	return BookingStatusBadges[b.Status]
}

type LaundryBookingResponse struct {
	LaundryBooking
	Actions []BookingAction `json:"actions"`
	Badge   StatusBadge     `json:"badge"`
}

func (b *LaundryBooking) ToResponse(role Role) LaundryBookingResponse {
	actions := b.AvailableActions(role)
	if actions == nil {
		actions = []BookingAction{}
	}
	return LaundryBookingResponse{
		LaundryBooking: *b,
		Actions:        actions,
		Badge:          b.Badge(),
	}
}

type CreateLaundryBookingRequest struct {
	Date     string `json:"date"     validate:"required"`
	TimeSlot string `json:"timeSlot" validate:"required"`
	Comment  string `json:"comment"`
}

// ProposeBookingRequest carries the counter-offer slot for propose and
// counter-propose actions.
type ProposeBookingRequest struct {
	Date     string `json:"date"     validate:"required"`
	TimeSlot string `json:"timeSlot" validate:"required"`
}

// BookingDate converts the stored date for comparisons.
func (b *LaundryBooking) BookingDate() time.Time {
	return time.Time(b.Date)
}
