package initializers

import (
	"log"

	"github.com/Kariqs/foodcash-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{}, &models.CashbackTransaction{}, &models.Order{}, &models.OrderItem{},
		&models.PaymentMethod{}, &models.Address{}); err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
