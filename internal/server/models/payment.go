package models

import "time"

// Product keys for the two purchasable offerings.
const (
	ProductCourse = "course"
	ProductBook   = "book"
)

// ValidProduct reports whether key names a purchasable product.
func ValidProduct(key string) bool {
	return key == ProductCourse || key == ProductBook
}

// Entitlement records whether a user has paid for one product.
// PaymentDate and PaymentID are set exactly when Paid flips to true.
type Entitlement struct {
	Paid        bool       `json:"paid"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	PaymentID   string     `json:"paymentId,omitempty"`
}

// Payments maps a product key to its entitlement record.
type Payments map[string]Entitlement

// NewPayments returns the default entitlement state for a fresh user:
// both products present and unpaid.
func NewPayments() Payments {
	return Payments{
		ProductCourse: {},
		ProductBook:   {},
	}
}

// Normalized returns a copy with both product keys present, so callers and
// JSON consumers always see course and book even when no payment row exists.
func (p Payments) Normalized() Payments {
	out := NewPayments()
	for k, v := range p {
		out[k] = v
	}
	return out
}

// PaidFor reports whether the product has a completed payment.
func (p Payments) PaidFor(key string) bool {
	return p[key].Paid
}
