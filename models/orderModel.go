package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivery  = "delivering"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;size:36"`
	UserID          string          `json:"userId" gorm:"size:36;index"`
	RestaurantID    string          `json:"restaurantId"`
	RestaurantName  string          `json:"restaurantName"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2)"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee" gorm:"type:decimal(12,2)"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
	CashbackAmount  decimal.Decimal `json:"cashbackAmount" gorm:"type:decimal(12,2)"`
	CashbackPercent decimal.Decimal `json:"cashbackPercent" gorm:"type:decimal(5,2)"`
	Status          string          `json:"status"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"date"`
}

type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	OrderID   string          `json:"orderId" gorm:"size:36;index"`
	ItemID    string          `json:"itemId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2)"`
	Quantity  int             `json:"quantity"`
	Options   datatypes.JSON  `json:"options,omitempty"`
}

// NewOrderItem snapshots a cart line for an order.
func NewOrderItem(orderID string, item CartItem) (OrderItem, error) {
	orderItem := OrderItem{
		OrderID:   orderID,
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.PricePerUnit(),
		Quantity:  item.Quantity,
	}
	if len(item.SelectedOptions) > 0 {
		raw, err := json.Marshal(item.SelectedOptions)
		if err != nil {
			return OrderItem{}, fmt.Errorf("encode options of %s: %w", item.ID, err)
		}
		orderItem.Options = datatypes.JSON(raw)
	}
	return orderItem, nil
}
