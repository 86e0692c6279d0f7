package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Kariqs/foodcash-api/store"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAuth accepts a bearer token only when it belongs to the user of the
// current session.
func RequireAuth(app *store.App, secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is missing"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
			return
		}
		userID, _ := claims["user_id"].(string)
		user, signedIn := app.Session.User()
		if !signedIn || userID == "" || user.ID != userID {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expired, log in again"})
			return
		}

		ctx.Set("user", claims)
		ctx.Next()
	}
}
