package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Contract struct {
	BaseUUIDModel
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	User   *User     `gorm:"foreignKey:UserID"        json:"user,omitempty"`
	RoomID uuid.UUID `gorm:"type:uuid;index;not null" json:"roomId"`
	Room   *Room     `gorm:"foreignKey:RoomID"        json:"room,omitempty"`

	StartDate     time.Time       `gorm:"type:date"                json:"startDate"`
	EndDate       time.Time       `gorm:"type:date"                json:"endDate"`
	RentAmount    decimal.Decimal `gorm:"type:numeric(10,2)"       json:"rentAmount"`
	DepositAmount decimal.Decimal `gorm:"type:numeric(10,2)"       json:"depositAmount"`
	IncludesWifi  bool            `gorm:"type:bool;default:false"  json:"includesWifi"`
	WifiCost      decimal.Decimal `gorm:"type:numeric(10,2)"       json:"wifiCost"`

	// Overdue is swept by the scheduler job, not set by clients.
	Overdue bool `gorm:"type:bool;default:false" json:"overdue"`
}

// MonthlyTotal is rent plus wifi when included.
func (c *Contract) MonthlyTotal() decimal.Decimal {
	total := c.RentAmount
	if c.IncludesWifi {
		total = total.Add(c.WifiCost)
	}
	return total
}

func (c Contract) SearchText() string {
	haystack := ""
	if c.User != nil {
		haystack = c.User.FullName + " " + c.User.Email
	}
	if c.Room != nil {
		haystack += " " + c.Room.Number
	}
	return strings.ToLower(haystack)
}

// Active reports whether date falls inside the contract period.
func (c *Contract) Active(date time.Time) bool {
	return !date.Before(c.StartDate) && !date.After(c.EndDate)
}

// Overlaps reports whether the contract period intersects [start, end],
// boundaries included.
func (c *Contract) Overlaps(start, end time.Time) bool {
	return !start.After(c.EndDate) && !end.Before(c.StartDate)
}

// NextMonthPayment is the computed next_month sub-object embedded in contract
// responses. It is derived from payment rows at read time, never stored.
type NextMonthPayment struct {
	Month     string          `json:"month"`
	Status    PaymentStatus   `json:"status"`
	DueAmount decimal.Decimal `json:"dueAmount"`
}

type ContractResponse struct {
	Contract
	NextMonth *NextMonthPayment `json:"nextMonth,omitempty"`
}

type CreateContractRequest struct {
	UserID        string `json:"userId"        validate:"required,uuid"`
	RoomID        string `json:"roomId"        validate:"required,uuid"`
	StartDate     string `json:"startDate"     validate:"required"`
	EndDate       string `json:"endDate"       validate:"required"`
	RentAmount    string `json:"rentAmount"    validate:"required"`
	DepositAmount string `json:"depositAmount" validate:"required"`
	IncludesWifi  bool   `json:"includesWifi"`
	WifiCost      string `json:"wifiCost"`
}

// UpdateContractRequest carries only the fields enabled for editing; nil fields
// stay untouched on PATCH.
type UpdateContractRequest struct {
	RoomID        *string `json:"roomId,omitempty"        validate:"omitempty,uuid"`
	StartDate     *string `json:"startDate,omitempty"`
	EndDate       *string `json:"endDate,omitempty"`
	RentAmount    *string `json:"rentAmount,omitempty"`
	DepositAmount *string `json:"depositAmount,omitempty"`
	IncludesWifi  *bool   `json:"includesWifi,omitempty"`
	WifiCost      *string `json:"wifiCost,omitempty"`
}
