package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/Kariqs/foodcash-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = time.Hour * 24 * 30

func generateJWT(user models.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":       user.ID,
		"email":         user.Email,
		"referral_code": user.ReferralCode,
		"iat":           time.Now().Unix(),
		"exp":           time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func sendWelcomeEmail(mailer utils.Mailer, user models.User) {
	err := mailer.SendEmail(user.Email, "Welcome aboard", "welcome", utils.EmailData{
		Name:    user.FullName,
		Message: "Thanks for signing up! Share your referral code and earn cashback on every order your friends place.",
		Code:    user.ReferralCode,
	})
	if err != nil {
		log.Println("Error sending welcome email:", err)
	}
}

func respondWithSession(ctx *gin.Context, env *Env, status int, user models.User, message string) {
	token, err := generateJWT(user, env.JWTSecret)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}
	body := gin.H{"user": user, "token": token}
	if message != "" {
		body["message"] = message
	}
	sendJSONResponse(ctx, status, body)
}

// Signup creates an account and signs it in.
func Signup(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var signUpData models.SignupData
		if err := ctx.ShouldBindJSON(&signUpData); err != nil {
			log.Println("Bind error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		user, err := env.App.Signup(ctx.Request.Context(), signUpData.FullName, signUpData.Email, signUpData.Password, signUpData.Phone)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}

		sendWelcomeEmail(env.Mailer, user)
		respondWithSession(ctx, env, http.StatusCreated, user, msgUserCreated)
	}
}

// Login signs a user in. Only one user can be signed in at a time.
func Login(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var loginData models.LoginData
		if err := ctx.ShouldBindJSON(&loginData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		if env.App.Session.IsAuthenticated() {
			sendErrorResponse(ctx, http.StatusConflict, msgAlreadyLoggedIn)
			return
		}

		user, err := env.App.Session.Login(ctx.Request.Context(), loginData.Email, loginData.Password)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		respondWithSession(ctx, env, http.StatusOK, user, "")
	}
}

func Logout(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		env.App.Logout()
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut})
	}
}
