package store

import (
	"time"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	PurchaserRate        = decimal.RequireFromString("0.03")
	DirectReferrerRate   = decimal.RequireFromString("0.02")
	IndirectReferrerRate = decimal.RequireFromString("0.01")

	hundred = decimal.NewFromInt(100)
)

// uplineRates[i] is paid to the referrer i+1 steps above the purchaser.
var uplineRates = []decimal.Decimal{DirectReferrerRate, IndirectReferrerRate}

// ExpandOrder splits the cashback of one completed order across the purchaser
// and at most two referrers above them. upline[0] is the direct referrer's
// code, upline[1] the indirect one; extra entries are ignored.
func ExpandOrder(orderID string, value decimal.Decimal, purchaser models.User, upline []string, at time.Time) []models.CashbackTransaction {
	if !value.IsPositive() {
		return nil
	}

	purchaserPercent := PurchaserRate.Mul(hundred)
	txs := []models.CashbackTransaction{{
		ID:              uuid.NewString(),
		Beneficiary:     purchaser.ReferralCode,
		Type:            models.TransactionOrder,
		Amount:          value.Mul(PurchaserRate).Round(2),
		Date:            at,
		OrderID:         orderID,
		CashbackPercent: &purchaserPercent,
	}}

	for i, code := range upline {
		if i >= len(uplineRates) {
			break
		}
		if code == "" || code == purchaser.ReferralCode {
			break
		}
		amount := value.Mul(uplineRates[i]).Round(2)
		if !amount.IsPositive() {
			continue
		}
		level := i + 1
		txs = append(txs, models.CashbackTransaction{
			ID:            uuid.NewString(),
			Beneficiary:   code,
			Type:          models.TransactionReferral,
			Amount:        amount,
			Date:          at,
			OrderID:       orderID,
			ReferredUser:  purchaser.FullName,
			ReferralLevel: &level,
		})
	}

	if !txs[0].Amount.IsPositive() {
		txs = txs[1:]
	}
	return txs
}

// ChainLevels lays out the display pyramid for a user: indirect referrer on
// level 1, direct referrer on level 2 and the user on level 3.
func ChainLevels(self models.User, direct, indirect *models.User) []models.ReferralLevel {
	levels := []models.ReferralLevel{
		{Level: 1, Label: "Indirect Referrer", Name: "Indirect Referrer", Percent: IndirectReferrerRate.Mul(hundred)},
		{Level: 2, Label: "Direct Referrer", Name: "Direct Referrer", Percent: DirectReferrerRate.Mul(hundred)},
		{Level: 3, Label: "You", Name: self.FullName, Code: self.ReferralCode, Percent: PurchaserRate.Mul(hundred)},
	}
	if indirect != nil {
		levels[0].Name, levels[0].Code = indirect.FullName, indirect.ReferralCode
	}
	if direct != nil {
		levels[1].Name, levels[1].Code = direct.FullName, direct.ReferralCode
	}
	if levels[2].Name == "" {
		levels[2].Name = "You"
	}
	return levels
}
