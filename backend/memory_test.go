package backend

import (
	"context"
	"testing"
	"time"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	user, err := mem.Register(ctx, models.User{ID: "u-1", Email: "Aysel@Example.com", ReferralCode: "FOOD1234"}, "hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.Password)

	got, err := mem.Authenticate(ctx, "aysel@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)

	_, err = mem.Authenticate(ctx, "aysel@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = mem.Register(ctx, models.User{ID: "u-2", Email: "aysel@example.com"}, "hunter22")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestMemory_SaveUserKeepsPassword(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Seed(models.User{ID: "u-1", Email: "a@example.com", ReferralCode: "FOOD1"}, "secret1"))

	assert.ErrorIs(t, mem.SaveUser(ctx, models.User{ID: "ghost"}), ErrUserNotFound)

	require.NoError(t, mem.SaveUser(ctx, models.User{ID: "u-1", FullName: "Renamed", Email: "a@example.com", ReferralCode: "FOOD1"}))
	user, err := mem.Authenticate(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.FullName)

	_, err = mem.FindByReferralCode(ctx, "FOOD2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemory_JournalAndOrders(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	require.NoError(t, mem.RecordTransaction(ctx, models.CashbackTransaction{ID: "1", Beneficiary: "A"}))
	require.NoError(t, mem.RecordTransaction(ctx, models.CashbackTransaction{ID: "2", Beneficiary: "B"}))
	txs, err := mem.Transactions(ctx, "A")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "1", txs[0].ID)

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, mem.RecordOrder(ctx, models.Order{ID: "o1", UserID: "u", CreatedAt: older}))
	require.NoError(t, mem.RecordOrder(ctx, models.Order{ID: "o2", UserID: "u", CreatedAt: older.Add(time.Hour)}))
	require.NoError(t, mem.RecordOrder(ctx, models.Order{ID: "o3", UserID: "other", CreatedAt: older}))

	orders, err := mem.Orders(ctx, "u")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)
}

func TestMemory_SaveUserRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Seed(models.User{ID: "u-a", Email: "a@example.com", ReferralCode: "FOOD1"}, "secret1"))
	require.NoError(t, mem.Seed(models.User{ID: "u-c", Email: "c@example.com", ReferralCode: "FOOD3"}, "secret3"))

	err := mem.SaveUser(ctx, models.User{ID: "u-c", Email: "A@example.com", ReferralCode: "FOOD3"})
	assert.ErrorIs(t, err, ErrUserExists)

	for range 20 {
		user, err := mem.Authenticate(ctx, "a@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "u-a", user.ID)
	}
	require.NoError(t, mem.SaveUser(ctx, models.User{ID: "u-c", Email: "C@example.com", ReferralCode: "FOOD3"}))
}

func TestMemory_PaymentMethodsAndAddresses(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	require.NoError(t, mem.SavePaymentMethod(ctx, models.PaymentMethod{ID: "pm-1", UserID: "u", Last4: "4242"}))
	require.NoError(t, mem.SavePaymentMethod(ctx, models.PaymentMethod{ID: "pm-2", UserID: "u", Last4: "1111"}))
	require.NoError(t, mem.SavePaymentMethod(ctx, models.PaymentMethod{ID: "pm-3", UserID: "other"}))
	require.NoError(t, mem.SavePaymentMethod(ctx, models.PaymentMethod{ID: "pm-1", UserID: "u", Last4: "4242", IsDefault: true}))

	methods, err := mem.PaymentMethods(ctx, "u")
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "pm-1", methods[0].ID)
	assert.True(t, methods[0].IsDefault)

	assert.ErrorIs(t, mem.DeletePaymentMethod(ctx, "u", "pm-3"), ErrRecordNotFound)
	require.NoError(t, mem.DeletePaymentMethod(ctx, "u", "pm-1"))
	methods, err = mem.PaymentMethods(ctx, "u")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "pm-2", methods[0].ID)

	require.NoError(t, mem.SaveAddress(ctx, models.Address{ID: "a-1", UserID: "u", City: "Baku"}))
	addresses, err := mem.Addresses(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, addresses, 1)
	assert.ErrorIs(t, mem.DeleteAddress(ctx, "other", "a-1"), ErrRecordNotFound)
	require.NoError(t, mem.DeleteAddress(ctx, "u", "a-1"))
}
