package models

import "github.com/shopspring/decimal"

type SelectedOption struct {
	OptionName  string          `json:"optionName"`
	ChoiceName  string          `json:"choiceName"`
	ChoicePrice decimal.Decimal `json:"choicePrice"`
}

type CartItem struct {
	ID              string           `json:"id" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	Quantity        int              `json:"quantity" binding:"required"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
}

// PricePerUnit is the unit price with every selected choice added on top.
func (i CartItem) PricePerUnit() decimal.Decimal {
	price := i.UnitPrice
	for _, opt := range i.SelectedOptions {
		price = price.Add(opt.ChoicePrice)
	}
	return price
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.PricePerUnit().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	Items          []CartItem      `json:"items"`
	RestaurantID   string          `json:"restaurantId,omitempty"`
	RestaurantName string          `json:"restaurantName,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	Total          decimal.Decimal `json:"total"`
}

type AddCartItemData struct {
	Item           CartItem `json:"item" binding:"required"`
	RestaurantID   string   `json:"restaurantId" binding:"required"`
	RestaurantName string   `json:"restaurantName" binding:"required"`
	Replace        bool     `json:"replace"`
}

type UpdateQuantityData struct {
	Quantity *int `json:"quantity" binding:"required"`
}
