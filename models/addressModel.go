package models

import "time"

type Address struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	UserID     string    `json:"-" gorm:"size:36;index"`
	Label      string    `json:"label"`
	Street     string    `json:"address"`
	Details    string    `json:"details,omitempty"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode" gorm:"size:16"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AddressData struct {
	Label      string `json:"label" binding:"required"`
	Street     string `json:"address" binding:"required"`
	Details    string `json:"details"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	IsDefault  bool   `json:"isDefault"`
}
