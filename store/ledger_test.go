package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingJournal struct{}

func (failingJournal) RecordTransaction(context.Context, models.CashbackTransaction) error {
	return errors.New("disk full")
}

func (failingJournal) Transactions(context.Context, string) ([]models.CashbackTransaction, error) {
	return nil, nil
}

func earn(t *testing.T, l *Ledger, kind models.TransactionType, amount string) {
	t.Helper()
	require.NoError(t, l.Append(context.Background(), models.CashbackTransaction{Type: kind, Amount: dec(amount)}))
}

func TestLedger_Totals(t *testing.T) {
	l := NewLedger("FOOD123", nil, nil)
	earn(t, l, models.TransactionOrder, "12.50")
	earn(t, l, models.TransactionReferral, "7.50")

	_, err := l.Withdraw(context.Background(), dec("5"), "")
	require.NoError(t, err)

	totals := l.Totals()
	assert.Equal(t, "20.00", totals.TotalEarned.StringFixed(2))
	assert.Equal(t, "5.00", totals.TotalWithdrawn.StringFixed(2))
	assert.Equal(t, "15.00", totals.TotalBalance.StringFixed(2))
}

func TestLedger_WithdrawMoreThanBalanceFails(t *testing.T) {
	l := NewLedger("FOOD123", nil, nil)
	earn(t, l, models.TransactionOrder, "40")

	_, err := l.Withdraw(context.Background(), dec("50"), "bank_card")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, "40.00", l.Totals().TotalBalance.StringFixed(2))
	assert.Len(t, l.Transactions(models.FilterAll), 1)
}

func TestLedger_WithdrawRejectsNonPositiveAmounts(t *testing.T) {
	l := NewLedger("FOOD123", nil, nil)
	earn(t, l, models.TransactionOrder, "40")

	for _, amount := range []string{"0", "-3"} {
		_, err := l.Withdraw(context.Background(), dec(amount), "")
		assert.ErrorIs(t, err, ErrInvalidAmount, amount)
	}
	assert.ErrorIs(t, l.Append(context.Background(), models.CashbackTransaction{Type: models.TransactionOrder, Amount: dec("0")}), ErrInvalidAmount)
}

func TestLedger_WithdrawRecordsMethod(t *testing.T) {
	l := NewLedger("FOOD123", nil, nil)
	earn(t, l, models.TransactionOrder, "40")

	tx, err := l.Withdraw(context.Background(), dec("40"), "")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionWithdrawal, tx.Type)
	assert.Equal(t, DefaultWithdrawalMethod, tx.Method)
	assert.Equal(t, "FOOD123", tx.Beneficiary)
	assert.NotEmpty(t, tx.ID)
	assert.True(t, l.Totals().TotalBalance.IsZero())
}

func TestLedger_JournalFailureKeepsLedgerUnchanged(t *testing.T) {
	l := NewLedger("FOOD123", failingJournal{}, []models.CashbackTransaction{
		{ID: "t1", Type: models.TransactionOrder, Amount: dec("10")},
	})

	_, err := l.Withdraw(context.Background(), dec("5"), "")
	assert.Error(t, err)
	assert.Equal(t, "10.00", l.Totals().TotalBalance.StringFixed(2))
}

func TestLedger_FiltersNewestFirst(t *testing.T) {
	l := NewLedger("FOOD123", nil, nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	l.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Hour)
	}

	earn(t, l, models.TransactionOrder, "10")
	earn(t, l, models.TransactionReferral, "4")
	_, err := l.Withdraw(context.Background(), dec("3"), "")
	require.NoError(t, err)

	all := l.Transactions(models.FilterAll)
	require.Len(t, all, 3)
	assert.Equal(t, models.TransactionWithdrawal, all[0].Type)
	assert.Equal(t, models.TransactionOrder, all[2].Type)

	earnings := l.Transactions(models.FilterEarnings)
	require.Len(t, earnings, 2)
	assert.Equal(t, models.TransactionReferral, earnings[0].Type)

	withdrawals := l.Transactions(models.FilterWithdrawals)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, "3.00", withdrawals[0].Amount.StringFixed(2))
}

func TestExpandOrder_ThreeLevels(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	purchaser := models.User{FullName: "Aysel", ReferralCode: "FOOD1111"}

	txs := ExpandOrder("o-1", dec("100"), purchaser, []string{"FOOD2222", "FOOD3333"}, at)
	require.Len(t, txs, 3)

	assert.Equal(t, models.TransactionOrder, txs[0].Type)
	assert.Equal(t, "FOOD1111", txs[0].Beneficiary)
	assert.Equal(t, "3.00", txs[0].Amount.StringFixed(2))
	assert.Nil(t, txs[0].ReferralLevel)
	require.NotNil(t, txs[0].CashbackPercent)
	assert.Equal(t, "3", txs[0].CashbackPercent.String())

	assert.Equal(t, models.TransactionReferral, txs[1].Type)
	assert.Equal(t, "FOOD2222", txs[1].Beneficiary)
	assert.Equal(t, "2.00", txs[1].Amount.StringFixed(2))
	require.NotNil(t, txs[1].ReferralLevel)
	assert.Equal(t, 1, *txs[1].ReferralLevel)
	assert.Equal(t, "Aysel", txs[1].ReferredUser)

	assert.Equal(t, "FOOD3333", txs[2].Beneficiary)
	assert.Equal(t, "1.00", txs[2].Amount.StringFixed(2))
	assert.Equal(t, 2, *txs[2].ReferralLevel)

	for _, tx := range txs {
		assert.Equal(t, "o-1", tx.OrderID)
		assert.Equal(t, at, tx.Date)
	}
}

func TestExpandOrder_PartialChains(t *testing.T) {
	purchaser := models.User{ReferralCode: "FOOD1111"}
	now := time.Now()

	assert.Len(t, ExpandOrder("o", dec("50"), purchaser, nil, now), 1)
	assert.Len(t, ExpandOrder("o", dec("50"), purchaser, []string{"FOOD2222"}, now), 2)
	assert.Len(t, ExpandOrder("o", dec("50"), purchaser, []string{"FOOD2222", "FOOD3333", "FOOD4444"}, now), 3)
	assert.Len(t, ExpandOrder("o", dec("50"), purchaser, []string{"FOOD1111"}, now), 1)
	assert.Empty(t, ExpandOrder("o", dec("0"), purchaser, []string{"FOOD2222"}, now))
}

func TestExpandOrder_RoundsToCents(t *testing.T) {
	txs := ExpandOrder("o", dec("33.33"), models.User{ReferralCode: "A"}, []string{"B", "C"}, time.Now())
	require.Len(t, txs, 3)
	assert.Equal(t, "1.00", txs[0].Amount.StringFixed(2))
	assert.Equal(t, "0.67", txs[1].Amount.StringFixed(2))
	assert.Equal(t, "0.33", txs[2].Amount.StringFixed(2))
}

func TestChainLevels(t *testing.T) {
	self := models.User{FullName: "Aysel", ReferralCode: "FOOD1111"}
	direct := &models.User{FullName: "Farid", ReferralCode: "FOOD2222"}

	levels := ChainLevels(self, direct, nil)
	require.Len(t, levels, 3)
	assert.Equal(t, "Indirect Referrer", levels[0].Name)
	assert.Equal(t, "1", levels[0].Percent.String())
	assert.Equal(t, "Farid", levels[1].Name)
	assert.Equal(t, "2", levels[1].Percent.String())
	assert.Equal(t, "Aysel", levels[2].Name)
	assert.Equal(t, "3", levels[2].Percent.String())
}
