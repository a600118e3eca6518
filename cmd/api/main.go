package main

import (
	"log"

	"estate-chat/config"
	"estate-chat/internal/domain"
	"estate-chat/internal/handler"
	"estate-chat/internal/presence"
	appredis "estate-chat/internal/redis"
	"estate-chat/internal/repository"
	"estate-chat/internal/server"
	"estate-chat/internal/services"
	"estate-chat/internal/websocket"
	"estate-chat/pkg/database"
	"estate-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)

	// Connect to Database
	database.Connect(cfg)

	if err := database.DB.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.Message{},
	); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Redis backs the directory profile cache only; the app runs without it.
	var cache *appredis.CacheStore
	redisClient := appredis.NewClient(cfg)
	if err := appredis.Ping(redisClient); err != nil {
		l.Errorf("Redis unavailable, profile cache disabled: %s", err)
	} else {
		cache = appredis.NewCacheStore(redisClient, 0)
	}

	chatRepo := repository.NewChatRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	authService := services.NewAuthService(cfg)
	directory := services.NewDirectoryService(userRepo, cache, l)
	chatService := services.NewChatService(chatRepo, directory, l)

	registry := presence.NewRegistry()
	router := websocket.NewRouter(registry, l)

	handlers := &server.Handlers{
		Chat: handler.NewChatHandler(chatService),
		User: handler.NewUserHandler(chatService),
		WS:   websocket.NewHandler(authService, registry, router),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
