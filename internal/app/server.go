package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/Convosum/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/Convosum/internal/api/middlewares"
	"github.com/markdave123-py/Convosum/internal/config"
	"github.com/markdave123-py/Convosum/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, users *services.UserService, chats *services.ChatService) *Server {
	secret := []byte(cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(users, secret, cfg.TokenTTL)
	chatHandler := handlers.NewChatHandler(chats)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8501"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// public endpoints
	r.Post("/users/auth/register", authHandler.Register)
	r.Post("/users/auth/login", authHandler.Login)

	// protected endpoints
	r.Group(func(protected chi.Router) {
		protected.Use(appMiddleware.JWTMiddleware(secret))
		protected.Post("/chats", chatHandler.StoreMessage)
		protected.Post("/chats/summarize", chatHandler.Summarize)
		protected.Post("/chats/insights", chatHandler.Insights)
		protected.Get("/chats/{conversation_id}", chatHandler.GetConversation)
		protected.Delete("/chats/{conversation_id}", chatHandler.DeleteConversation)
		protected.Get("/users/{user_id}/chats", chatHandler.GetUserChats)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
