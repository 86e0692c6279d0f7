package backend

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Kariqs/foodcash-api/models"
	"golang.org/x/crypto/bcrypt"
)

// Memory is an in-process user registry and journal. It backs the demo
// server and the tests.
type Memory struct {
	mu           sync.RWMutex
	users        map[string]models.User
	transactions []models.CashbackTransaction
	orders       []models.Order

	paymentMethods []models.PaymentMethod
	addresses      []models.Address
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]models.User)}
}

// Seed adds an account directly, hashing password.
func (m *Memory) Seed(user models.User, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.mu.Lock()
	m.users[user.ID] = user
	m.mu.Unlock()
	return nil
}

func (m *Memory) findBy(match func(models.User) bool) (models.User, bool) {
	for _, u := range m.users {
		if match(u) {
			return u, true
		}
	}
	return models.User{}, false
}

func (m *Memory) Authenticate(_ context.Context, email, password string) (models.User, error) {
	m.mu.RLock()
	user, ok := m.findBy(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
	m.mu.RUnlock()
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := comparePasswords(user.Password, password); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (m *Memory) Register(_ context.Context, user models.User, password string) (models.User, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.findBy(func(u models.User) bool { return strings.EqualFold(u.Email, user.Email) }); exists {
		return models.User{}, ErrUserExists
	}
	now := time.Now()
	user.Password = hashed
	user.CreatedAt, user.UpdatedAt = now, now
	m.users[user.ID] = user
	return user, nil
}

func (m *Memory) SaveUser(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	if _, taken := m.findBy(func(u models.User) bool {
		return u.ID != user.ID && strings.EqualFold(u.Email, user.Email)
	}); taken {
		return ErrUserExists
	}
	user.Password = existing.Password
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *Memory) FindByReferralCode(_ context.Context, code string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.findBy(func(u models.User) bool { return u.ReferralCode == code })
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (m *Memory) RecordTransaction(_ context.Context, tx models.CashbackTransaction) error {
	m.mu.Lock()
	m.transactions = append(m.transactions, tx)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Transactions(_ context.Context, beneficiary string) ([]models.CashbackTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.CashbackTransaction
	for _, tx := range m.transactions {
		if tx.Beneficiary == beneficiary {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *Memory) RecordOrder(_ context.Context, order models.Order) error {
	m.mu.Lock()
	m.orders = append(m.orders, order)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Orders(_ context.Context, userID string) ([]models.Order, error) {
	m.mu.RLock()
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	m.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func upsert[T any](list []T, item T, sameID func(T) bool) []T {
	for i := range list {
		if sameID(list[i]) {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func without[T any](list []T, match func(T) bool) ([]T, bool) {
	for i := range list {
		if match(list[i]) {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}

func ownedBy[T any](list []T, owner func(T) bool) []T {
	var out []T
	for _, item := range list {
		if owner(item) {
			out = append(out, item)
		}
	}
	return out
}

func (m *Memory) SavePaymentMethod(_ context.Context, pm models.PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentMethods = upsert(m.paymentMethods, pm, func(p models.PaymentMethod) bool { return p.ID == pm.ID })
	return nil
}

func (m *Memory) PaymentMethods(_ context.Context, userID string) ([]models.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ownedBy(m.paymentMethods, func(p models.PaymentMethod) bool { return p.UserID == userID }), nil
}

func (m *Memory) DeletePaymentMethod(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.paymentMethods, ok = without(m.paymentMethods, func(p models.PaymentMethod) bool { return p.ID == id && p.UserID == userID })
	if !ok {
		return ErrRecordNotFound
	}
	return nil
}

func (m *Memory) SaveAddress(_ context.Context, addr models.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addresses = upsert(m.addresses, addr, func(a models.Address) bool { return a.ID == addr.ID })
	return nil
}

func (m *Memory) Addresses(_ context.Context, userID string) ([]models.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ownedBy(m.addresses, func(a models.Address) bool { return a.UserID == userID }), nil
}

func (m *Memory) DeleteAddress(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.addresses, ok = without(m.addresses, func(a models.Address) bool { return a.ID == id && a.UserID == userID })
	if !ok {
		return ErrRecordNotFound
	}
	return nil
}

const bcryptCost = 10

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
