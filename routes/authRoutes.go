package routes

import (
	"github.com/Kariqs/foodcash-api/controllers"
	"github.com/Kariqs/foodcash-api/middlewares"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func AuthRoutes(server *gin.Engine, env *controllers.Env) {
	limiter := middlewares.NewRateLimiter(rate.Limit(1), 5)
	authed := middlewares.RequireAuth(env.App, env.JWTSecret)

	auth := server.Group("/auth")
	{
		auth.POST("/signup", limiter.Limit(), controllers.Signup(env))
		auth.POST("/login", limiter.Limit(), controllers.Login(env))
		auth.POST("/logout", authed, controllers.Logout(env))
	}

	user := server.Group("/user", authed)
	{
		user.GET("", controllers.GetUser(env))
		user.PUT("", controllers.UpdateUser(env))
		user.PUT("/referral", controllers.UpdateReferralCode(env))
		user.POST("/avatar", controllers.UploadAvatar(env))
	}
}
