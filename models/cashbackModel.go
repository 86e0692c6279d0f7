package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionOrder      TransactionType = "order"
	TransactionReferral   TransactionType = "referral"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// CashbackTransaction is an immutable ledger entry. Amount is always positive;
// withdrawals are subtracted when aggregating.
type CashbackTransaction struct {
	ID              string           `json:"id" gorm:"primaryKey;size:36"`
	Beneficiary     string           `json:"beneficiary" gorm:"size:16;index"`
	Type            TransactionType  `json:"type" gorm:"size:16"`
	Amount          decimal.Decimal  `json:"amount" gorm:"type:decimal(12,2)"`
	Date            time.Time        `json:"date"`
	OrderID         string           `json:"orderId,omitempty" gorm:"size:36"`
	CashbackPercent *decimal.Decimal `json:"cashbackPercent,omitempty" gorm:"type:decimal(5,2)"`
	ReferredUser    string           `json:"referredUser,omitempty"`
	ReferralLevel   *int             `json:"referralLevel,omitempty"`
	Method          string           `json:"method,omitempty"`
}

type TransactionFilter string

const (
	FilterAll         TransactionFilter = "all"
	FilterEarnings    TransactionFilter = "earnings"
	FilterWithdrawals TransactionFilter = "withdrawals"
)

func (f TransactionFilter) Match(tx CashbackTransaction) bool {
	switch f {
	case FilterEarnings:
		return tx.Type != TransactionWithdrawal
	case FilterWithdrawals:
		return tx.Type == TransactionWithdrawal
	default:
		return true
	}
}

type CashbackTotals struct {
	TotalEarned    decimal.Decimal `json:"totalEarned"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
}

type WithdrawData struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

// ReferralLevel is one rung of the display pyramid.
type ReferralLevel struct {
	Level   int             `json:"level"`
	Label   string          `json:"label"`
	Name    string          `json:"name"`
	Code    string          `json:"code,omitempty"`
	Percent decimal.Decimal `json:"percent"`
}
