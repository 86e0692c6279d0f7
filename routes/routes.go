package routes

import (
	"github.com/Kariqs/foodcash-api/controllers"
	"github.com/gin-gonic/gin"
)

// Register wires every route group onto server.
func Register(server *gin.Engine, env *controllers.Env) {
	DefaultRoutes(server)
	AuthRoutes(server, env)
	CartRoutes(server, env)
	OrderRoutes(server, env)
	CashbackRoutes(server, env)
	ProfileRoutes(server, env)
}
