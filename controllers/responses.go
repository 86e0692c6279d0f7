package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/Kariqs/foodcash-api/store"
	"github.com/Kariqs/foodcash-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput          = "invalid input"
	msgInvalidCredentials    = "invalid email or password"
	msgAlreadyLoggedIn       = "already logged in, log out first"
	msgNotLoggedIn           = "log in to continue"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgUserCreated           = "Account created successfully."
	msgLoggedOut             = "Logged out."
	msgCartCleared           = "Cart cleared"
	msgItemNotFound          = "Cart item not found"
	msgEmptyCart             = "Your cart is empty"
	msgOperationPending      = "A previous request is still in progress"
	msgInsufficientBalance   = "Insufficient balance"
	msgInvalidAmount         = "Enter a valid amount"
	msgReferrerNotFound      = "Referral code not found"
	msgPaymentNotFound       = "Payment method not found"
	msgAddressNotFound       = "Address not found"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// sendStoreError maps state-model errors onto HTTP responses.
func sendStoreError(ctx *gin.Context, err error) {
	var validationErr *store.ValidationError
	var mismatchErr *store.RestaurantMismatchError

	switch {
	case errors.As(err, &validationErr):
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{"message": validationErr.Error(), "field": validationErr.Field})
	case errors.As(err, &mismatchErr):
		sendJSONResponse(ctx, http.StatusConflict, gin.H{
			"message":               mismatchErr.Error(),
			"currentRestaurantId":   mismatchErr.CurrentID,
			"currentRestaurantName": mismatchErr.CurrentName,
		})
	case errors.Is(err, store.ErrAuthentication):
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, store.ErrNotAuthenticated):
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotLoggedIn)
	case errors.Is(err, store.ErrOperationPending):
		sendErrorResponse(ctx, http.StatusConflict, msgOperationPending)
	case errors.Is(err, store.ErrItemNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgItemNotFound)
	case errors.Is(err, store.ErrPaymentMethodNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgPaymentNotFound)
	case errors.Is(err, store.ErrAddressNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, msgAddressNotFound)
	case errors.Is(err, store.ErrEmptyCart):
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmptyCart)
	case errors.Is(err, store.ErrInsufficientBalance):
		sendErrorResponse(ctx, http.StatusUnprocessableEntity, msgInsufficientBalance)
	case errors.Is(err, store.ErrInvalidAmount):
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidAmount)
	default:
		log.Println("Unhandled error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

type cartItemView struct {
	models.CartItem
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type cartView struct {
	Items          []cartItemView `json:"items"`
	RestaurantID   string         `json:"restaurantId,omitempty"`
	RestaurantName string         `json:"restaurantName,omitempty"`
	Subtotal       string         `json:"subtotal"`
	DeliveryFee    string         `json:"deliveryFee"`
	Total          string         `json:"total"`
}

func newCartView(cart models.Cart) cartView {
	view := cartView{
		Items:          make([]cartItemView, 0, len(cart.Items)),
		RestaurantID:   cart.RestaurantID,
		RestaurantName: cart.RestaurantName,
		Subtotal:       utils.FormatCurrency(cart.Subtotal),
		DeliveryFee:    utils.FormatCurrency(cart.DeliveryFee),
		Total:          utils.FormatCurrency(cart.Total),
	}
	for _, item := range cart.Items {
		view.Items = append(view.Items, cartItemView{
			CartItem:  item,
			UnitPrice: utils.FormatCurrency(item.UnitPrice),
			LineTotal: utils.FormatCurrency(item.LineTotal()),
		})
	}
	return view
}

type transactionView struct {
	models.CashbackTransaction
	Amount string `json:"amount"`
}

func newTransactionViews(txs []models.CashbackTransaction) []transactionView {
	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, transactionView{CashbackTransaction: tx, Amount: utils.FormatCurrency(tx.Amount)})
	}
	return views
}

func totalsView(t models.CashbackTotals) gin.H {
	return gin.H{
		"totalBalance":   utils.FormatCurrency(t.TotalBalance),
		"totalEarned":    utils.FormatCurrency(t.TotalEarned),
		"totalWithdrawn": utils.FormatCurrency(t.TotalWithdrawn),
	}
}
