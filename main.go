package main

import (
	"context"
	"log"

	"pulse/cache"
	"pulse/config"
	"pulse/controllers"
	"pulse/database"
	"pulse/middleware"
	"pulse/routes"
	"pulse/services"
	"pulse/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.Migrate(db)

	pageCache, err := cache.NewRedisPageCache(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}

	var store storage.Storage
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
	default:
		store, err = storage.NewLocalStorage(cfg.UploadPath)
	}
	if err != nil {
		log.Fatal("Failed to set up storage:", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Logger())

	feedController := controllers.NewFeedController(db, pageCache, cfg)
	postController := controllers.NewPostController(db, store)
	profileController := controllers.NewProfileController(db, cfg)
	authController := controllers.NewAuthController(services.NewUserService(db))

	routes.SetupRoutes(r, feedController, postController, profileController, authController)

	if local, ok := store.(*storage.LocalStorage); ok {
		r.Static("/media", local.BasePath())
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
