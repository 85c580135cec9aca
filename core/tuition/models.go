package tuition

import (
	"github.com/tvqdev/deanboard/core"
)

// Tuition payment states, derived server-side from paid vs total.
const (
	StatusPending   = "PENDING"
	StatusPartial   = "PARTIAL"
	StatusCompleted = "COMPLETED"
)

// StatusFor mirrors the server's derivation so screens can preview the status a
// payment update will produce. A zero-amount bill counts as completed. Note the
// server accepts paid > total and reports it as COMPLETED; nothing clamps it.
func StatusFor(paid, total int) string {
	switch {
	case total == 0:
		return StatusCompleted
	case paid >= total:
		return StatusCompleted
	case paid > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}

// Tuition is one student's bill for one semester. Amounts are whole VND.
type Tuition struct {
	ID          int    `json:"id"`
	StudentID   int    `json:"student_id"`
	Semester    string `json:"semester"`
	TotalAmount int    `json:"total_amount"`
	PaidAmount  int    `json:"paid_amount"`
	Status      string `json:"status"`
}

type UpdatePayment struct {
	PaidAmount int `json:"paid_amount" validate:"gte=0"`
}

func (up *UpdatePayment) Validate() error {
	if err := core.Validate.Struct(up); err != nil {
		return core.TranslateErrors(err)
	}
	return nil
}

// Settings holds the single global tuition knob: the price of one credit.
type Settings struct {
	PricePerCredit int `json:"price_per_credit" validate:"required,gt=0"`
}

func (s *Settings) Validate() error {
	if err := core.Validate.Struct(s); err != nil {
		return core.TranslateErrors(err)
	}
	return nil
}
