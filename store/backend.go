package store

import (
	"context"

	"github.com/Kariqs/foodcash-api/models"
)

// Backend is everything the state models need from the outside world. It is
// served by an in-memory registry in tests, by MySQL through gorm, or by a
// remote REST API.
type Backend interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, user models.User, password string) (models.User, error)
	SaveUser(ctx context.Context, user models.User) error
	FindByReferralCode(ctx context.Context, code string) (models.User, error)

	RecordTransaction(ctx context.Context, tx models.CashbackTransaction) error
	Transactions(ctx context.Context, beneficiary string) ([]models.CashbackTransaction, error)

	RecordOrder(ctx context.Context, order models.Order) error
	Orders(ctx context.Context, userID string) ([]models.Order, error)

	// Saved payment methods and addresses, oldest first. Save inserts or
	// replaces by ID; Delete reports backend.ErrRecordNotFound for an ID the
	// user does not own.
	SavePaymentMethod(ctx context.Context, pm models.PaymentMethod) error
	PaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, userID, id string) error

	SaveAddress(ctx context.Context, addr models.Address) error
	Addresses(ctx context.Context, userID string) ([]models.Address, error)
	DeleteAddress(ctx context.Context, userID, id string) error
}
