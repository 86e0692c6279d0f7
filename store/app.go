package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Kariqs/foodcash-api/backend"
	"github.com/Kariqs/foodcash-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// App is the application state owned by the composition root and handed to
// every handler: one session, one cart and the cashback book.
type App struct {
	Session *Session
	Cart    *Cart
	Book    *Book

	backend    Backend
	checkoutMu sync.Mutex
	profileMu  sync.Mutex
	now        func() time.Time
}

type Options struct {
	DeliveryFee decimal.Decimal
}

func NewApp(b Backend, opts Options) *App {
	fee := opts.DeliveryFee
	if fee.IsZero() {
		fee = DefaultDeliveryFee
	}
	return &App{
		Session: NewSession(b),
		Cart:    NewCart(fee),
		Book:    NewBook(b),
		backend: b,
		now:     time.Now,
	}
}

// Signup registers and signs in a new account. The cart of whoever used the
// app before starts over empty.
func (a *App) Signup(ctx context.Context, fullName, email, password, phone string) (models.User, error) {
	user, err := a.Session.Signup(ctx, fullName, email, password, phone)
	if err != nil {
		return models.User{}, err
	}
	a.Cart.Clear()
	return user, nil
}

// Logout ends the session, empties the cart and drops any credentials the
// backend holds for the user.
func (a *App) Logout() {
	a.Session.Logout()
	a.Cart.Clear()
	if l, ok := a.backend.(interface{ Logout() }); ok {
		l.Logout()
	}
}

// Ledger returns the cashback account of the signed-in user.
func (a *App) Ledger(ctx context.Context) (*Ledger, error) {
	user, ok := a.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	a.settle(ctx)
	return a.Book.Ledger(ctx, user.ReferralCode)
}

// settle retries cashback entries left over from earlier checkouts.
func (a *App) settle(ctx context.Context) {
	if err := a.Book.Retry(ctx); err != nil {
		log.Println("Cashback retry failed:", err)
	}
}

// Upline resolves the referral codes above user, nearest first.
func (a *App) Upline(ctx context.Context, user models.User) []string {
	if user.ReferredBy == nil || *user.ReferredBy == "" {
		return nil
	}
	direct := *user.ReferredBy
	upline := []string{direct}

	referrer, err := a.backend.FindByReferralCode(ctx, direct)
	if err != nil {
		if !errors.Is(err, backend.ErrUserNotFound) {
			log.Println("Referrer lookup failed:", err)
		}
		return upline
	}
	if referrer.ReferredBy != nil && *referrer.ReferredBy != "" && *referrer.ReferredBy != user.ReferralCode {
		upline = append(upline, *referrer.ReferredBy)
	}
	return upline
}

// Checkout turns the cart into an order, empties the cart and posts the
// cashback split. Once the order is recorded it stands: a posting failure is
// returned alongside it and the entries are retried later.
func (a *App) Checkout(ctx context.Context) (models.Order, error) {
	user, ok := a.Session.User()
	if !ok {
		return models.Order{}, ErrNotAuthenticated
	}
	if !a.checkoutMu.TryLock() {
		return models.Order{}, fmt.Errorf("checkout: %w", ErrOperationPending)
	}
	defer a.checkoutMu.Unlock()

	cart := a.Cart.Snapshot()
	if len(cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	order, err := newOrder(user, cart, a.now())
	if err != nil {
		return models.Order{}, err
	}
	if err := a.backend.RecordOrder(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("record order: %w", err)
	}
	a.Cart.Clear()
	a.settle(ctx)

	payouts := ExpandOrder(order.ID, order.Subtotal, user, a.Upline(ctx, user), order.CreatedAt)
	if err := a.Book.Post(ctx, payouts); err != nil {
		log.Printf("Order %s recorded, but cashback posting failed: %v", order.ID, err)
		return order, fmt.Errorf("post cashback: %w", err)
	}
	return order, nil
}

func newOrder(user models.User, cart models.Cart, at time.Time) (models.Order, error) {
	percent := PurchaserRate.Mul(hundred)
	order := models.Order{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		RestaurantID:    cart.RestaurantID,
		RestaurantName:  cart.RestaurantName,
		Subtotal:        cart.Subtotal,
		DeliveryFee:     cart.DeliveryFee,
		Total:           cart.Total,
		CashbackAmount:  cart.Subtotal.Mul(PurchaserRate).Round(2),
		CashbackPercent: percent,
		Status:          models.OrderStatusPending,
		CreatedAt:       at,
	}
	for _, item := range cart.Items {
		orderItem, err := models.NewOrderItem(order.ID, item)
		if err != nil {
			return models.Order{}, err
		}
		order.OrderItems = append(order.OrderItems, orderItem)
	}
	return order, nil
}

func (a *App) Orders(ctx context.Context) ([]models.Order, error) {
	user, ok := a.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return a.backend.Orders(ctx, user.ID)
}

// ReferralChain builds the display pyramid for the account owning code.
func (a *App) ReferralChain(ctx context.Context, code string) ([]models.ReferralLevel, error) {
	self, err := a.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	var direct, indirect *models.User
	upline := a.Upline(ctx, self)
	if len(upline) > 0 {
		direct = a.describe(ctx, upline[0])
	}
	if len(upline) > 1 {
		indirect = a.describe(ctx, upline[1])
	}
	return ChainLevels(self, direct, indirect), nil
}

func (a *App) lookup(ctx context.Context, code string) (models.User, error) {
	if current, ok := a.Session.User(); ok && current.ReferralCode == code {
		return current, nil
	}
	return a.backend.FindByReferralCode(ctx, code)
}

// describe returns the account behind code, or a stub carrying just the code
// when the registry does not know it.
func (a *App) describe(ctx context.Context, code string) *models.User {
	user, err := a.backend.FindByReferralCode(ctx, code)
	if err != nil {
		return &models.User{FullName: code, ReferralCode: code}
	}
	return &user
}
