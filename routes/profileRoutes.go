package routes

import (
	"github.com/Kariqs/foodcash-api/controllers"
	"github.com/Kariqs/foodcash-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProfileRoutes(server *gin.Engine, env *controllers.Env) {
	authed := middlewares.RequireAuth(env.App, env.JWTSecret)

	payments := server.Group("/payment-methods", authed)
	{
		payments.GET("", controllers.GetPaymentMethods(env))
		payments.POST("", controllers.AddPaymentMethod(env))
		payments.PUT("/:id/default", controllers.SetDefaultPaymentMethod(env))
		payments.DELETE("/:id", controllers.RemovePaymentMethod(env))
	}

	addresses := server.Group("/addresses", authed)
	{
		addresses.GET("", controllers.GetAddresses(env))
		addresses.POST("", controllers.AddAddress(env))
		addresses.PUT("/:id/default", controllers.SetDefaultAddress(env))
		addresses.DELETE("/:id", controllers.RemoveAddress(env))
	}
}
