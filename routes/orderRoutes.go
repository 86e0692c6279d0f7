package routes

import (
	"github.com/Kariqs/foodcash-api/controllers"
	"github.com/Kariqs/foodcash-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, env *controllers.Env) {
	orders := server.Group("/orders", middlewares.RequireAuth(env.App, env.JWTSecret))
	{
		orders.POST("", controllers.Checkout(env))
		orders.GET("", controllers.GetOrders(env))
	}
}
