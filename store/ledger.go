package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultWithdrawalMethod = "bank_card"

// Journal persists ledger entries before they become visible.
type Journal interface {
	RecordTransaction(ctx context.Context, tx models.CashbackTransaction) error
	Transactions(ctx context.Context, beneficiary string) ([]models.CashbackTransaction, error)
}

// Ledger is the append-only cashback account of one referral code.
type Ledger struct {
	mu      sync.Mutex
	owner   string
	txs     []models.CashbackTransaction
	journal Journal
	now     func() time.Time
}

func NewLedger(owner string, journal Journal, history []models.CashbackTransaction) *Ledger {
	return &Ledger{
		owner:   owner,
		txs:     append([]models.CashbackTransaction(nil), history...),
		journal: journal,
		now:     time.Now,
	}
}

func (l *Ledger) Owner() string { return l.owner }

// Append records tx and adds it to the ledger.
func (l *Ledger) Append(ctx context.Context, tx models.CashbackTransaction) error {
	if !tx.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.append(ctx, tx)
}

func (l *Ledger) append(ctx context.Context, tx models.CashbackTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date.IsZero() {
		tx.Date = l.now()
	}
	tx.Beneficiary = l.owner
	if l.journal != nil {
		if err := l.journal.RecordTransaction(ctx, tx); err != nil {
			return fmt.Errorf("record %s transaction: %w", tx.Type, err)
		}
	}
	l.txs = append(l.txs, tx)
	return nil
}

func (l *Ledger) Totals() models.CashbackTotals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return totals(l.txs)
}

func totals(txs []models.CashbackTransaction) models.CashbackTotals {
	earned, withdrawn := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if tx.Type == models.TransactionWithdrawal {
			withdrawn = withdrawn.Add(tx.Amount)
		} else {
			earned = earned.Add(tx.Amount)
		}
	}
	return models.CashbackTotals{
		TotalEarned:    earned,
		TotalWithdrawn: withdrawn,
		TotalBalance:   earned.Sub(withdrawn),
	}
}

// Transactions returns the entries matching filter, newest first.
func (l *Ledger) Transactions(filter models.TransactionFilter) []models.CashbackTransaction {
	l.mu.Lock()
	out := make([]models.CashbackTransaction, 0, len(l.txs))
	for _, tx := range l.txs {
		if filter.Match(tx) {
			out = append(out, tx)
		}
	}
	l.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Withdraw moves amount out of the balance.
func (l *Ledger) Withdraw(ctx context.Context, amount decimal.Decimal, method string) (models.CashbackTransaction, error) {
	if !amount.IsPositive() {
		return models.CashbackTransaction{}, ErrInvalidAmount
	}
	method = strings.TrimSpace(method)
	if method == "" {
		method = DefaultWithdrawalMethod
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.GreaterThan(totals(l.txs).TotalBalance) {
		return models.CashbackTransaction{}, ErrInsufficientBalance
	}
	tx := models.CashbackTransaction{
		ID:     uuid.NewString(),
		Type:   models.TransactionWithdrawal,
		Amount: amount,
		Date:   l.now(),
		Method: method,
	}
	if err := l.append(ctx, tx); err != nil {
		return models.CashbackTransaction{}, err
	}
	return l.txs[len(l.txs)-1], nil
}

// Book keeps one ledger per referral code. Entries the journal refuses are
// parked until Retry succeeds, so a posting never has to be repeated.
type Book struct {
	mu      sync.Mutex
	journal Journal
	ledgers map[string]*Ledger

	pendingMu sync.Mutex
	pending   []models.CashbackTransaction
}

func NewBook(journal Journal) *Book {
	return &Book{journal: journal, ledgers: make(map[string]*Ledger)}
}

// Ledger returns the account for owner, loading its history on first use.
func (b *Book) Ledger(ctx context.Context, owner string) (*Ledger, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if l, ok := b.ledgers[owner]; ok {
		return l, nil
	}
	var history []models.CashbackTransaction
	if b.journal != nil {
		var err error
		history, err = b.journal.Transactions(ctx, owner)
		if err != nil {
			return nil, fmt.Errorf("load cashback history: %w", err)
		}
	}
	l := NewLedger(owner, b.journal, history)
	b.ledgers[owner] = l
	return l, nil
}

// Post appends each entry to the ledger of its beneficiary. The batch is
// checked as a whole first; entries that then fail to land are kept for Retry.
func (b *Book) Post(ctx context.Context, txs []models.CashbackTransaction) error {
	for _, tx := range txs {
		if tx.Beneficiary == "" {
			return invalid("beneficiary", "is required")
		}
		if !tx.Amount.IsPositive() {
			return fmt.Errorf("post %s entry for %s: %w", tx.Type, tx.Beneficiary, ErrInvalidAmount)
		}
	}

	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	return b.post(ctx, txs)
}

func (b *Book) post(ctx context.Context, txs []models.CashbackTransaction) error {
	var errs []error
	for _, tx := range txs {
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		err := b.append(ctx, tx)
		if err != nil {
			b.pending = append(b.pending, tx)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Book) append(ctx context.Context, tx models.CashbackTransaction) error {
	l, err := b.Ledger(ctx, tx.Beneficiary)
	if err != nil {
		return err
	}
	return l.Append(ctx, tx)
}

// Retry posts the parked entries again. Whatever still fails stays parked.
func (b *Book) Retry(ctx context.Context) error {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	if len(b.pending) == 0 {
		return nil
	}
	queue := b.pending
	b.pending = nil
	return b.post(ctx, queue)
}

// Pending returns a copy of the entries waiting for Retry.
func (b *Book) Pending() []models.CashbackTransaction {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	return append([]models.CashbackTransaction(nil), b.pending...)
}
