package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentApproved      PaymentStatus = "approved"
	PaymentPendingReview PaymentStatus = "pending_review"
	PaymentRejected      PaymentStatus = "rejected"
	PaymentOverdue       PaymentStatus = "overdue"
	PaymentUpcoming      PaymentStatus = "upcoming"
)

// StatusBadge is the static status -> label/color lookup the dashboard renders.
type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var PaymentStatusBadges = map[PaymentStatus]StatusBadge{
	PaymentApproved:      {Label: "Aprobado", Color: "green"},
	PaymentPendingReview: {Label: "En revisión", Color: "orange"},
	PaymentRejected:      {Label: "Rechazado", Color: "red"},
	PaymentOverdue:       {Label: "Vencido", Color: "red"},
	PaymentUpcoming:      {Label: "Próximo", Color: "gray"},
}

type RentPayment struct {
	BaseUUIDModel
	ContractID uuid.UUID `gorm:"type:uuid;index;not null" json:"contractId"`
	Contract   *Contract `gorm:"foreignKey:ContractID"    json:"contract,omitempty"`

	// MonthPaid uses the YYYY-MM form, e.g. "2025-01".
	MonthPaid string          `gorm:"type:varchar(7);index"              json:"monthPaid"`
	Status    PaymentStatus   `gorm:"type:text;default:'upcoming';index" json:"status"`
	DueAmount decimal.Decimal `gorm:"type:numeric(10,2)"                 json:"dueAmount"`

	ReceiptPath  string `gorm:"type:text" json:"receiptPath,omitempty"`
	UserComment  string `gorm:"type:text" json:"userComment,omitempty"`
	AdminComment string `gorm:"type:text" json:"adminComment,omitempty"`
}

// Reviewable reports whether an uploaded receipt may move this payment into
// review. Approved payments are final.
func (p *RentPayment) Reviewable() bool {
	switch p.Status {
	case PaymentUpcoming, PaymentOverdue, PaymentRejected:
		return true
	default:
		return false
	}
}

func (p *RentPayment) Badge() StatusBadge {
	return PaymentStatusBadges[p.Status]
}

type ReviewPaymentRequest struct {
	AdminComment string `json:"adminComment"`
}
