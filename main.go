package main

import (
	"fmt"
	"log"

	"filevault/config"
	"filevault/database"
	"filevault/handlers"
	"filevault/logger"
	"filevault/middleware"
	"filevault/models"
	"filevault/repositories"
	"filevault/services"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Infof("starting filevault service")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger.SetLevel(cfg.Log.Level)

	if err := database.InitMySQL(&cfg.Database); err != nil {
		log.Fatalf("init mysql failed: %v", err)
	}

	database.DB.AutoMigrate(
		&models.User{},
		&models.File{},
	)
	logger.Infof("database migration completed")

	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("init redis failed: %v", err)
	}

	repoContainer := repositories.NewGormRepositories(database.DB, database.RedisClient).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer)
	handlers.SetServices(serviceContainer)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())
	setupRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("server listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", handlers.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// View handles carry their own capability; no auth middleware here.
	api.GET("/view/:token", handlers.ViewFile)
	api.DELETE("/view/:token", handlers.ReleaseViewHandle)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", handlers.GetProfile)
		protected.GET("/user/storage/quota", handlers.GetStorageQuota)

		protected.GET("/files", handlers.ListFiles)
		protected.POST("/files", handlers.UploadFile)
		protected.POST("/files/upload-url", handlers.CreateUploadURL)
		protected.GET("/files/:id", handlers.GetFile)
		protected.GET("/files/:id/download", handlers.DownloadFile)
		protected.GET("/files/:id/thumbnail", handlers.GetThumbnail)

		protected.POST("/files/:id/favorite", handlers.FavoriteFile)
		protected.POST("/files/:id/unfavorite", handlers.UnfavoriteFile)
		protected.DELETE("/files/:id", handlers.DeleteFile)
		protected.POST("/files/:id/restore", handlers.RestoreFile)
		protected.DELETE("/files/:id/permanent", handlers.PermanentDeleteFile)

		protected.POST("/files/:id/view", handlers.CreateViewHandle)
	}
}
