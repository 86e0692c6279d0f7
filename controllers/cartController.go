package controllers

import (
	"log"
	"net/http"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/gin-gonic/gin"
)

func GetCart(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": newCartView(env.App.Cart.Snapshot())})
	}
}

// AddCartItem adds an item, or bumps its quantity when it is already in the
// cart. Items from another restaurant need "replace": true.
func AddCartItem(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var data models.AddCartItemData
		if err := ctx.ShouldBindJSON(&data); err != nil {
			log.Println("Bind error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		cart, err := env.App.Cart.AddItem(data.Item, data.RestaurantID, data.RestaurantName, data.Replace)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusCreated, gin.H{
			"message": data.Item.Name + " added to cart",
			"cart":    newCartView(cart),
		})
	}
}

func UpdateCartItem(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var data models.UpdateQuantityData
		if err := ctx.ShouldBindJSON(&data); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		cart, err := env.App.Cart.UpdateQuantity(ctx.Param("itemId"), *data.Quantity)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": newCartView(cart)})
	}
}

func RemoveCartItem(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cart, err := env.App.Cart.RemoveItem(ctx.Param("itemId"))
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": newCartView(cart)})
	}
}

func ClearCart(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cart := env.App.Cart.Clear()
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCartCleared, "cart": newCartView(cart)})
	}
}
