package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/vperic/linguachat/internal/config"
	"github.com/vperic/linguachat/internal/database"
	"github.com/vperic/linguachat/internal/linkpreview"
	postgresrepo "github.com/vperic/linguachat/internal/repository/postgres"
	"github.com/vperic/linguachat/internal/service"
	"github.com/vperic/linguachat/internal/translate"
	"github.com/vperic/linguachat/internal/transport/http/handlers"
	"github.com/vperic/linguachat/internal/transport/http/middleware"
	"github.com/vperic/linguachat/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal(err)
	}
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	friendRepo := postgresrepo.NewFriendshipRepo(pool)
	convRepo := postgresrepo.NewConversationRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Translation gateway and companion model
	model := translate.NewAnthropic(cfg.AnthropicAPIKey, cfg.TranslateModel)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo)
	resolver := service.NewLanguageResolver(userRepo)
	convService := service.NewConversationService(convRepo, userRepo)
	friendService := service.NewFriendshipService(friendRepo, userRepo, convService)
	messageService := service.NewMessageService(messageRepo, convRepo, resolver, model, cfg.TranslateTimeout)
	companionService := service.NewCompanionService(model, 0)

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()
	messageService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendshipHandler(friendService)
	convHandler := handlers.NewConversationHandler(convService, messageService)
	messageHandler := handlers.NewMessageHandler(messageService)
	companionHandler := handlers.NewCompanionHandler(companionService)
	previewHandler := handlers.NewPreviewHandler(linkpreview.NewFetcher())

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Users
	mux.Handle("GET /api/v1/users/me", auth(http.HandlerFunc(userHandler.Me)))
	mux.Handle("PATCH /api/v1/users/me", auth(http.HandlerFunc(userHandler.UpdateMe)))
	mux.Handle("GET /api/v1/users/search", auth(http.HandlerFunc(userHandler.Search)))

	// Protected - Friendships
	mux.Handle("POST /api/v1/friends/requests", auth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("GET /api/v1/friends/requests", auth(http.HandlerFunc(friendHandler.ListRequests)))
	mux.Handle("POST /api/v1/friends/requests/{id}/accept", auth(http.HandlerFunc(friendHandler.Accept)))
	mux.Handle("POST /api/v1/friends/requests/{id}/reject", auth(http.HandlerFunc(friendHandler.Reject)))
	mux.Handle("DELETE /api/v1/friends/requests/{id}", auth(http.HandlerFunc(friendHandler.Cancel)))
	mux.Handle("GET /api/v1/friends", auth(http.HandlerFunc(friendHandler.ListFriends)))

	// Protected - Conversations
	mux.Handle("POST /api/v1/conversations", auth(http.HandlerFunc(convHandler.GetOrCreate)))
	mux.Handle("GET /api/v1/conversations", auth(http.HandlerFunc(convHandler.List)))
	mux.Handle("GET /api/v1/conversations/{id}", auth(http.HandlerFunc(convHandler.Get)))
	mux.Handle("DELETE /api/v1/conversations/{id}", auth(http.HandlerFunc(convHandler.Delete)))
	mux.Handle("POST /api/v1/conversations/{id}/read", auth(http.HandlerFunc(convHandler.MarkRead)))
	mux.Handle("POST /api/v1/conversations/{id}/archive", auth(http.HandlerFunc(convHandler.Archive)))
	mux.Handle("DELETE /api/v1/conversations/{id}/archive", auth(http.HandlerFunc(convHandler.Unarchive)))

	// Protected - Messages
	mux.Handle("POST /api/v1/conversations/{id}/messages", auth(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("GET /api/v1/conversations/{id}/messages", auth(http.HandlerFunc(messageHandler.List)))
	mux.Handle("PATCH /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Edit)))
	mux.Handle("DELETE /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Delete)))

	// Protected - Companion & previews
	mux.Handle("POST /api/v1/companion/chat", auth(http.HandlerFunc(companionHandler.Chat)))
	mux.Handle("GET /api/v1/preview", auth(http.HandlerFunc(previewHandler.Get)))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
