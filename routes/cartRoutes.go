package routes

import (
	"github.com/Kariqs/foodcash-api/controllers"
	"github.com/Kariqs/foodcash-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, env *controllers.Env) {
	cart := server.Group("/cart", middlewares.RequireAuth(env.App, env.JWTSecret))
	{
		cart.GET("", controllers.GetCart(env))
		cart.DELETE("", controllers.ClearCart(env))
		cart.POST("/items", controllers.AddCartItem(env))
		cart.PATCH("/items/:itemId", controllers.UpdateCartItem(env))
		cart.DELETE("/items/:itemId", controllers.RemoveCartItem(env))
	}
}
