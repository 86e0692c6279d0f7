package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/foodcash-api/backend"
	"github.com/Kariqs/foodcash-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethods lists the saved payment methods of the signed-in user.
func (a *App) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	user, ok := a.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return a.backend.PaymentMethods(ctx, user.ID)
}

// AddPaymentMethod validates and saves a payment method. The first one saved
// becomes the default, and a new default demotes the previous one.
func (a *App) AddPaymentMethod(ctx context.Context, data models.PaymentMethodData) (models.PaymentMethod, error) {
	user, ok := a.Session.User()
	if !ok {
		return models.PaymentMethod{}, ErrNotAuthenticated
	}
	pm, err := newPaymentMethod(data, a.now())
	if err != nil {
		return models.PaymentMethod{}, err
	}
	pm.UserID = user.ID

	a.profileMu.Lock()
	defer a.profileMu.Unlock()

	existing, err := a.backend.PaymentMethods(ctx, user.ID)
	if err != nil {
		return models.PaymentMethod{}, err
	}
	pm.IsDefault = data.IsDefault || len(existing) == 0
	if pm.IsDefault {
		for _, other := range existing {
			if other.IsDefault {
				other.IsDefault = false
				if err := a.backend.SavePaymentMethod(ctx, other); err != nil {
					return models.PaymentMethod{}, err
				}
			}
		}
	}
	if err := a.backend.SavePaymentMethod(ctx, pm); err != nil {
		return models.PaymentMethod{}, err
	}
	return pm, nil
}

// SetDefaultPaymentMethod makes id the only default payment method.
func (a *App) SetDefaultPaymentMethod(ctx context.Context, id string) ([]models.PaymentMethod, error) {
	user, ok := a.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	a.profileMu.Lock()
	defer a.profileMu.Unlock()

	methods, err := a.backend.PaymentMethods(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !containsID(methods, id, func(p models.PaymentMethod) string { return p.ID }) {
		return nil, ErrPaymentMethodNotFound
	}
	for i := range methods {
		want := methods[i].ID == id
		if methods[i].IsDefault != want {
			methods[i].IsDefault = want
			if err := a.backend.SavePaymentMethod(ctx, methods[i]); err != nil {
				return nil, err
			}
		}
	}
	return methods, nil
}

// RemovePaymentMethod deletes a saved method. Removing the default promotes
// the oldest remaining one.
func (a *App) RemovePaymentMethod(ctx context.Context, id string) ([]models.PaymentMethod, error) {
	user, ok := a.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	a.profileMu.Lock()
	defer a.profileMu.Unlock()

	if err := a.backend.DeletePaymentMethod(ctx, user.ID, id); err != nil {
		if errors.Is(err, backend.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	methods, err := a.backend.PaymentMethods(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(methods) > 0 && !containsDefault(methods, func(p models.PaymentMethod) bool { return p.IsDefault }) {
		methods[0].IsDefault = true
		if err := a.backend.SavePaymentMethod(ctx, methods[0]); err != nil {
			return nil, err
		}
	}
	return methods, nil
}

// Addresses lists the saved delivery addresses of the signed-in user.
func (a *App) Addresses(ctx context.Context) ([]models.Address, error) {
	user, ok := a.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return a.backend.Addresses(ctx, user.ID)
}

// AddAddress saves a delivery address with the same default rules as
// payment methods.
func (a *App) AddAddress(ctx context.Context, data models.AddressData) (models.Address, error) {
	user, ok := a.Session.User()
	if !ok {
		return models.Address{}, ErrNotAuthenticated
	}
	addr := models.Address{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Label:      strings.TrimSpace(data.Label),
		Street:     strings.TrimSpace(data.Street),
		Details:    strings.TrimSpace(data.Details),
		City:       strings.TrimSpace(data.City),
		PostalCode: strings.TrimSpace(data.PostalCode),
		CreatedAt:  a.now(),
	}
	switch {
	case addr.Label == "":
		return models.Address{}, invalid("label", "is required")
	case addr.Street == "":
		return models.Address{}, invalid("address", "is required")
	case addr.City == "":
		return models.Address{}, invalid("city", "is required")
	case addr.PostalCode == "":
		return models.Address{}, invalid("postalCode", "is required")
	}

	a.profileMu.Lock()
	defer a.profileMu.Unlock()

	existing, err := a.backend.Addresses(ctx, user.ID)
	if err != nil {
		return models.Address{}, err
	}
	addr.IsDefault = data.IsDefault || len(existing) == 0
	if addr.IsDefault {
		for _, other := range existing {
			if other.IsDefault {
				other.IsDefault = false
				if err := a.backend.SaveAddress(ctx, other); err != nil {
					return models.Address{}, err
				}
			}
		}
	}
	if err := a.backend.SaveAddress(ctx, addr); err != nil {
		return models.Address{}, err
	}
	return addr, nil
}

func (a *App) SetDefaultAddress(ctx context.Context, id string) ([]models.Address, error) {
	user, ok := a.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	a.profileMu.Lock()
	defer a.profileMu.Unlock()

	addresses, err := a.backend.Addresses(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !containsID(addresses, id, func(addr models.Address) string { return addr.ID }) {
		return nil, ErrAddressNotFound
	}
	for i := range addresses {
		want := addresses[i].ID == id
		if addresses[i].IsDefault != want {
			addresses[i].IsDefault = want
			if err := a.backend.SaveAddress(ctx, addresses[i]); err != nil {
				return nil, err
			}
		}
	}
	return addresses, nil
}

func (a *App) RemoveAddress(ctx context.Context, id string) ([]models.Address, error) {
	user, ok := a.Session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	a.profileMu.Lock()
	defer a.profileMu.Unlock()

	if err := a.backend.DeleteAddress(ctx, user.ID, id); err != nil {
		if errors.Is(err, backend.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	addresses, err := a.backend.Addresses(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(addresses) > 0 && !containsDefault(addresses, func(addr models.Address) bool { return addr.IsDefault }) {
		addresses[0].IsDefault = true
		if err := a.backend.SaveAddress(ctx, addresses[0]); err != nil {
			return nil, err
		}
	}
	return addresses, nil
}

// Withdraw takes amount out of the signed-in user's cashback. method may be
// the ID of a saved payment method, free text, or empty for the default
// saved method.
func (a *App) Withdraw(ctx context.Context, amount decimal.Decimal, method string) (models.CashbackTransaction, error) {
	ledger, err := a.Ledger(ctx)
	if err != nil {
		return models.CashbackTransaction{}, err
	}
	methods, err := a.PaymentMethods(ctx)
	if err != nil {
		return models.CashbackTransaction{}, fmt.Errorf("load payment methods: %w", err)
	}
	return ledger.Withdraw(ctx, amount, resolveMethod(methods, strings.TrimSpace(method)))
}

func resolveMethod(methods []models.PaymentMethod, method string) string {
	for _, pm := range methods {
		if (method == "" && pm.IsDefault) || (method != "" && pm.ID == method) {
			return pm.Describe()
		}
	}
	return method
}

func containsID[T any](list []T, id string, idOf func(T) string) bool {
	for _, item := range list {
		if idOf(item) == id {
			return true
		}
	}
	return false
}

func containsDefault[T any](list []T, isDefault func(T) bool) bool {
	for _, item := range list {
		if isDefault(item) {
			return true
		}
	}
	return false
}

func newPaymentMethod(data models.PaymentMethodData, now time.Time) (models.PaymentMethod, error) {
	pm := models.PaymentMethod{
		ID:        uuid.NewString(),
		Type:      data.Type,
		Name:      strings.TrimSpace(data.Name),
		CreatedAt: now,
	}
	switch data.Type {
	case models.PaymentCard:
		number := digitsOnly(data.CardNumber)
		if len(number) < 12 || len(number) > 19 || !luhnValid(number) {
			return models.PaymentMethod{}, invalid("cardNumber", "is not a valid card number")
		}
		expiry := strings.TrimSpace(data.Expiry)
		if err := checkExpiry(expiry, now); err != nil {
			return models.PaymentMethod{}, err
		}
		if cvv := strings.TrimSpace(data.CVV); len(cvv) < 3 || len(cvv) > 4 || digitsOnly(cvv) != cvv {
			return models.PaymentMethod{}, invalid("cvv", "must be 3 or 4 digits")
		}
		pm.Last4 = number[len(number)-4:]
		pm.Brand = cardBrand(number)
		pm.Expiry = expiry
	case models.PaymentPayPal:
		pm.Email = strings.TrimSpace(data.Email)
		if !strings.Contains(pm.Email, "@") {
			return models.PaymentMethod{}, invalid("email", "is required for paypal")
		}
	case models.PaymentApplePay, models.PaymentGooglePay:
	default:
		return models.PaymentMethod{}, invalid("type", "must be one of card, paypal, apple, google")
	}
	return pm, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
		default:
			return ""
		}
	}
	return b.String()
}

func luhnValid(number string) bool {
	sum := 0
	for i := 0; i < len(number); i++ {
		d := int(number[len(number)-1-i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

func cardBrand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "Amex"
	case number[0] == '5' && number[1] >= '1' && number[1] <= '5':
		return "Mastercard"
	default:
		return "Card"
	}
}

// checkExpiry accepts MM/YY for the current month or later.
func checkExpiry(expiry string, now time.Time) error {
	month, year, found := strings.Cut(expiry, "/")
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if !found || len(month) != 2 || len(year) != 2 || errM != nil || errY != nil || m < 1 || m > 12 {
		return invalid("expiry", "must be MM/YY")
	}
	if 2000+y < now.Year() || (2000+y == now.Year() && m < int(now.Month())) {
		return invalid("expiry", "card has expired")
	}
	return nil
}
