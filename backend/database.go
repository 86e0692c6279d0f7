package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kariqs/foodcash-api/models"
	"gorm.io/gorm"
)

// Database keeps users, cashback entries and orders in MySQL through gorm.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (d *Database) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := d.findUser(ctx, "email = ?", strings.ToLower(email))
	if errors.Is(err, ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	if err := comparePasswords(user.Password, password); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (d *Database) Register(ctx context.Context, user models.User, password string) (models.User, error) {
	user.Email = strings.ToLower(user.Email)
	_, err := d.findUser(ctx, "email = ?", user.Email)
	if err == nil {
		return models.User{}, ErrUserExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, fmt.Errorf("check user exists: %w", err)
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user.Password = hashed
	if err := d.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SaveUser updates the profile columns of user. The connection must be opened
// with TranslateError for the email unique index to surface as ErrUserExists.
func (d *Database) SaveUser(ctx context.Context, user models.User) error {
	user.Email = strings.ToLower(user.Email)
	result := d.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"full_name":   user.FullName,
			"email":       user.Email,
			"phone":       user.Phone,
			"referred_by": user.ReferredBy,
			"avatar_url":  user.AvatarURL,
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (d *Database) FindByReferralCode(ctx context.Context, code string) (models.User, error) {
	return d.findUser(ctx, "referral_code = ?", code)
}

func (d *Database) RecordTransaction(ctx context.Context, tx models.CashbackTransaction) error {
	return d.db.WithContext(ctx).Create(&tx).Error
}

func (d *Database) Transactions(ctx context.Context, beneficiary string) ([]models.CashbackTransaction, error) {
	var txs []models.CashbackTransaction
	err := d.db.WithContext(ctx).
		Where("beneficiary = ?", beneficiary).
		Order("date asc").
		Find(&txs).Error
	return txs, err
}

func (d *Database) RecordOrder(ctx context.Context, order models.Order) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
}

func (d *Database) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := d.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (d *Database) SavePaymentMethod(ctx context.Context, pm models.PaymentMethod) error {
	return d.db.WithContext(ctx).Save(&pm).Error
}

func (d *Database) PaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&methods).Error
	return methods, err
}

func (d *Database) DeletePaymentMethod(ctx context.Context, userID, id string) error {
	return deleteOwned(d.db.WithContext(ctx), &models.PaymentMethod{}, userID, id)
}

func (d *Database) SaveAddress(ctx context.Context, addr models.Address) error {
	return d.db.WithContext(ctx).Save(&addr).Error
}

func (d *Database) Addresses(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&addresses).Error
	return addresses, err
}

func (d *Database) DeleteAddress(ctx context.Context, userID, id string) error {
	return deleteOwned(d.db.WithContext(ctx), &models.Address{}, userID, id)
}

func deleteOwned(db *gorm.DB, model any, userID, id string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
