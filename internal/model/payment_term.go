package model

import (
	"strconv"
	"strings"
	"time"

	"go-backoffice-ws/internal/paymentterm"
)

// PaymentTerm is a supplier payment term configuration.
//
// Kind decides which of the remaining fields matter:
//   - from_invoice / from_delivery: Days
//   - fixed_dates: Anchors, a comma-separated list of day-of-month values
//     ("10,25"); 31 means "last day of the month"
//   - weekly: Weekday (0 = Sunday ... 6 = Saturday)
type PaymentTerm struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Kind    string `gorm:"type:varchar(20);not null" json:"kind" validate:"required,oneof=from_invoice from_delivery fixed_dates weekly"`
	Days    int    `gorm:"default:0" json:"days"`
	Anchors string `gorm:"type:varchar(100)" json:"anchors"`
	Weekday int    `gorm:"default:0" json:"weekday" validate:"gte=0,lte=6"`
}

func (PaymentTerm) TableName() string {
	return "payment_terms"
}

// AnchorDays parses the serialized anchor list. Malformed entries are
// skipped so a bad row degrades to "no anchors" instead of an error.
func (t *PaymentTerm) AnchorDays() []int {
	if t.Anchors == "" {
		return nil
	}
	parts := strings.Split(t.Anchors, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || d < 1 || d > 31 {
			continue
		}
		days = append(days, d)
	}
	return days
}

// ToTerm converts the stored row into the calculator's term value.
func (t *PaymentTerm) ToTerm() *paymentterm.Term {
	if t == nil {
		return nil
	}
	return &paymentterm.Term{
		Kind:    paymentterm.Kind(t.Kind),
		Days:    t.Days,
		Anchors: t.AnchorDays(),
		Weekday: time.Weekday(t.Weekday),
	}
}
