package controllers

import (
	"log"
	"net/http"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/gin-gonic/gin"
)

func GetPaymentMethods(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		methods, err := env.App.PaymentMethods(ctx.Request.Context())
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"paymentMethods": nonNil(methods)})
	}
}

// AddPaymentMethod saves a card or wallet. Card numbers and CVVs are checked
// and dropped; only the last four digits are stored.
func AddPaymentMethod(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var data models.PaymentMethodData
		if err := ctx.ShouldBindJSON(&data); err != nil {
			log.Println("Bind error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		pm, err := env.App.AddPaymentMethod(ctx.Request.Context(), data)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusCreated, gin.H{
			"message":       "Payment method added successfully",
			"paymentMethod": pm,
		})
	}
}

func SetDefaultPaymentMethod(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		methods, err := env.App.SetDefaultPaymentMethod(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"paymentMethods": nonNil(methods)})
	}
}

func RemovePaymentMethod(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		methods, err := env.App.RemovePaymentMethod(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message":        "Payment method removed",
			"paymentMethods": nonNil(methods),
		})
	}
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
