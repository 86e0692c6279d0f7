package controllers

import (
	"net/http"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/gin-gonic/gin"
)

func GetAddresses(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		addresses, err := env.App.Addresses(ctx.Request.Context())
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": nonNil(addresses)})
	}
}

func AddAddress(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var data models.AddressData
		if err := ctx.ShouldBindJSON(&data); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		addr, err := env.App.AddAddress(ctx.Request.Context(), data)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusCreated, gin.H{"address": addr})
	}
}

func SetDefaultAddress(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		addresses, err := env.App.SetDefaultAddress(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": nonNil(addresses)})
	}
}

func RemoveAddress(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		addresses, err := env.App.RemoveAddress(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": nonNil(addresses)})
	}
}
