package routes

import (
	"github.com/Kariqs/foodcash-api/controllers"
	"github.com/Kariqs/foodcash-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CashbackRoutes(server *gin.Engine, env *controllers.Env) {
	authed := middlewares.RequireAuth(env.App, env.JWTSecret)

	server.GET("/cashback/summary", authed, controllers.GetCashbackSummary(env))
	server.GET("/cashback/transactions", authed, controllers.GetTransactions(env))
	server.POST("/withdrawals", authed, controllers.Withdraw(env))
	server.GET("/referrals/:code/chain", authed, controllers.GetReferralChain(env))
}
