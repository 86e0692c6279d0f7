package controllers

import (
	"github.com/Kariqs/foodcash-api/store"
	"github.com/Kariqs/foodcash-api/utils"
)

// Env carries the dependencies every handler is built from.
type Env struct {
	App       *store.App
	JWTSecret string
	Mailer    utils.Mailer
	Uploader  utils.Uploader
}
