package models

import (
	"fmt"
	"strings"
	"time"
)

type PaymentMethodType string

const (
	PaymentCard      PaymentMethodType = "card"
	PaymentPayPal    PaymentMethodType = "paypal"
	PaymentApplePay  PaymentMethodType = "apple"
	PaymentGooglePay PaymentMethodType = "google"
)

// PaymentMethod is a saved way to pay or to receive withdrawals. Only the last
// four digits of a card are kept.
type PaymentMethod struct {
	ID        string            `json:"id" gorm:"primaryKey;size:36"`
	UserID    string            `json:"-" gorm:"size:36;index"`
	Type      PaymentMethodType `json:"type" gorm:"size:16"`
	Last4     string            `json:"last4,omitempty" gorm:"size:4"`
	Expiry    string            `json:"expiry,omitempty" gorm:"size:5"`
	Brand     string            `json:"brand,omitempty" gorm:"size:32"`
	Name      string            `json:"name,omitempty"`
	Email     string            `json:"email,omitempty"`
	IsDefault bool              `json:"isDefault"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Describe is the label written on withdrawal records.
func (p PaymentMethod) Describe() string {
	switch p.Type {
	case PaymentCard:
		return fmt.Sprintf("%s **** %s", p.Brand, p.Last4)
	case PaymentPayPal:
		return "paypal " + p.Email
	case PaymentApplePay:
		return "Apple Pay"
	case PaymentGooglePay:
		return "Google Pay"
	default:
		return strings.TrimSpace(string(p.Type) + " " + p.Name)
	}
}

type PaymentMethodData struct {
	Type       PaymentMethodType `json:"type" binding:"required,oneof=card paypal apple google"`
	CardNumber string            `json:"cardNumber"`
	Expiry     string            `json:"expiry"`
	CVV        string            `json:"cvv"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	IsDefault  bool              `json:"isDefault"`
}
