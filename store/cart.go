package store

import (
	"strings"
	"sync"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/shopspring/decimal"
)

// DefaultDeliveryFee is charged once per non-empty cart.
var DefaultDeliveryFee = decimal.RequireFromString("2.99")

// Cart is the single active cart. Every item belongs to the same restaurant.
type Cart struct {
	mu          sync.Mutex
	deliveryFee decimal.Decimal
	state       models.Cart
}

func NewCart(deliveryFee decimal.Decimal) *Cart {
	c := &Cart{deliveryFee: deliveryFee}
	c.reset()
	return c
}

func (c *Cart) reset() {
	c.state = models.Cart{Items: []models.CartItem{}}
	c.recalculate()
}

func (c *Cart) recalculate() {
	subtotal := decimal.Zero
	for _, item := range c.state.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	fee := decimal.Zero
	if len(c.state.Items) > 0 {
		fee = c.deliveryFee
	}
	c.state.Subtotal = subtotal
	c.state.DeliveryFee = fee
	c.state.Total = subtotal.Add(fee)
}

func validateItem(item models.CartItem, restaurantID string) error {
	switch {
	case strings.TrimSpace(item.ID) == "":
		return invalid("item.id", "is required")
	case strings.TrimSpace(restaurantID) == "":
		return invalid("restaurantId", "is required")
	case item.Quantity < 1:
		return invalid("item.quantity", "must be at least 1")
	case item.UnitPrice.IsNegative():
		return invalid("item.unitPrice", "must not be negative")
	}
	for _, opt := range item.SelectedOptions {
		if opt.ChoicePrice.IsNegative() {
			return invalid("item.selectedOptions", "choice price must not be negative")
		}
	}
	return nil
}

// AddItem puts item into the cart. An item from a different restaurant is
// refused with *RestaurantMismatchError unless replace is set, in which case
// the cart is emptied and holds only the new item.
func (c *Cart) AddItem(item models.CartItem, restaurantID, restaurantName string, replace bool) (models.Cart, error) {
	if err := validateItem(item, restaurantID); err != nil {
		return models.Cart{}, err
	}
	item.SelectedOptions = append([]models.SelectedOption(nil), item.SelectedOptions...)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.state.Items) > 0 && c.state.RestaurantID != restaurantID {
		if !replace {
			return models.Cart{}, &RestaurantMismatchError{
				CurrentID:   c.state.RestaurantID,
				CurrentName: c.state.RestaurantName,
				IncomingID:  restaurantID,
			}
		}
		c.reset()
	}

	if len(c.state.Items) == 0 {
		c.state.RestaurantID = restaurantID
		c.state.RestaurantName = restaurantName
	}

	merged := false
	for i := range c.state.Items {
		if c.state.Items[i].ID == item.ID {
			c.state.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.state.Items = append(c.state.Items, item)
	}

	c.recalculate()
	return c.snapshot(), nil
}

// UpdateQuantity sets an item's quantity. Zero or less removes the item.
func (c *Cart) UpdateQuantity(itemID string, quantity int) (models.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(itemID)
	if idx < 0 {
		return models.Cart{}, ErrItemNotFound
	}
	if quantity <= 0 {
		c.removeAt(idx)
		return c.snapshot(), nil
	}
	c.state.Items[idx].Quantity = quantity
	c.recalculate()
	return c.snapshot(), nil
}

// RemoveItem drops an item. Removing the last item also drops the restaurant scope.
func (c *Cart) RemoveItem(itemID string) (models.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(itemID)
	if idx < 0 {
		return models.Cart{}, ErrItemNotFound
	}
	c.removeAt(idx)
	return c.snapshot(), nil
}

func (c *Cart) Clear() models.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	return c.snapshot()
}

func (c *Cart) Snapshot() models.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Cart) indexOf(itemID string) int {
	for i, item := range c.state.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.state.Items = append(c.state.Items[:idx], c.state.Items[idx+1:]...)
	if len(c.state.Items) == 0 {
		c.state.RestaurantID = ""
		c.state.RestaurantName = ""
	}
	c.recalculate()
}

func (c *Cart) snapshot() models.Cart {
	out := c.state
	out.Items = make([]models.CartItem, len(c.state.Items))
	for i, item := range c.state.Items {
		item.SelectedOptions = append([]models.SelectedOption(nil), item.SelectedOptions...)
		out.Items[i] = item
	}
	return out
}
