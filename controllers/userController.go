package controllers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 5 << 20

func GetUser(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := env.App.Session.User()
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, msgNotLoggedIn)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
	}
}

func UpdateUser(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var update models.UserUpdate
		if err := ctx.ShouldBindJSON(&update); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		user, err := env.App.Session.UpdateUser(ctx.Request.Context(), update)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
	}
}

// UpdateReferralCode records the code of the user who invited the current one.
func UpdateReferralCode(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var data models.ReferralCodeData
		if err := ctx.ShouldBindJSON(&data); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		user, err := env.App.Session.UpdateReferralCode(ctx.Request.Context(), data.Code)
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
	}
}

func UploadAvatar(env *Env) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if env.Uploader == nil {
			sendErrorResponse(ctx, http.StatusServiceUnavailable, "Avatar uploads are not configured")
			return
		}
		user, ok := env.App.Session.User()
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, msgNotLoggedIn)
			return
		}

		file, err := ctx.FormFile("avatar")
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "No file uploaded")
			return
		}
		if file.Size > maxAvatarSize {
			sendErrorResponse(ctx, http.StatusBadRequest, "Avatar must be 5MB or smaller")
			return
		}

		f, err := file.Open()
		if err != nil {
			log.Printf("Error opening file %s: %v", file.Filename, err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid file")
			return
		}
		defer f.Close()

		key := fmt.Sprintf("avatars/%s-%s%s", user.ID, time.Now().Format("20060102150405"), filepath.Ext(file.Filename))
		url, err := env.Uploader.Upload(ctx.Request.Context(), key, f, file.Header.Get("Content-Type"))
		if err != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, err)
			sendErrorResponse(ctx, http.StatusBadGateway, "Failed to upload avatar")
			return
		}

		updated, err := env.App.Session.UpdateUser(ctx.Request.Context(), models.UserUpdate{AvatarURL: &url})
		if err != nil {
			sendStoreError(ctx, err)
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"user": updated})
	}
}
