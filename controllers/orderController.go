package controllers

import (
	"net/http"

	"github.com/Kariqs/foodcash-api/utils"
	"github.com/gin-gonic/gin"
)

// Checkout places an order for the current cart and credits the cashback split.
func Checkout(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		order, err := env.App.Checkout(ctx.Request.Context())
		if err != nil && order.ID == "" {
			sendStoreError(ctx, err)
			return
		}
		body := gin.H{
			"message":        "Order placed successfully.",
			"order":          order,
			"cashbackAmount": utils.FormatCurrency(order.CashbackAmount),
		}
		if err != nil {
			body["warning"] = "Order placed, cashback will be credited later"
		}
		sendJSONResponse(ctx, http.StatusCreated, body)
	}
}

func GetOrders(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orders, err := env.App.Orders(ctx.Request.Context())
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
	}
}
