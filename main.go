package main

import (
	"context"
	"log"
	"time"

	"github.com/Kariqs/foodcash-api/backend"
	"github.com/Kariqs/foodcash-api/controllers"
	"github.com/Kariqs/foodcash-api/initializers"
	"github.com/Kariqs/foodcash-api/models"
	"github.com/Kariqs/foodcash-api/routes"
	"github.com/Kariqs/foodcash-api/store"
	"github.com/Kariqs/foodcash-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func newBackend(cfg initializers.Config) (store.Backend, error) {
	switch cfg.Backend {
	case initializers.BackendMySQL:
		db, err := initializers.ConnectToDB(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := initializers.SyncDatabase(db); err != nil {
			return nil, err
		}
		return backend.NewDatabase(db), nil
	case initializers.BackendRemote:
		return backend.NewRemote(cfg.RemoteAPIURL), nil
	default:
		mem := backend.NewMemory()
		demo := models.User{
			ID:           "123",
			FullName:     "Demo User",
			Email:        "demo@foodcash.app",
			Phone:        "+994 70 000 00 00",
			ReferralCode: "FOOD123",
		}
		if err := mem.Seed(demo, "password"); err != nil {
			return nil, err
		}
		log.Println("Using in-memory backend, demo login:", demo.Email)
		return mem, nil
	}
}

func main() {
	cfg, err := initializers.LoadEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	b, err := newBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to set up backend: %v", err)
	}

	env := &controllers.Env{
		App:       store.NewApp(b, store.Options{DeliveryFee: cfg.DeliveryFee}),
		JWTSecret: cfg.JWTSecret,
		Mailer: utils.Mailer{
			From:     cfg.FromEmail,
			Password: cfg.FromEmailPassword,
			Host:     cfg.FromEmailSMTP,
			Address:  cfg.SMTPAddress,
		},
	}
	if cfg.AvatarBucket != "" {
		uploader, err := utils.NewS3Uploader(context.Background(), cfg.AvatarBucket)
		if err != nil {
			log.Fatalf("Failed to configure AWS: %v", err)
		}
		env.Uploader = uploader
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.Register(server, env)

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
