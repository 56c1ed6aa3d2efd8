package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/markdave123-py/Convosum/internal/config"
	db "github.com/markdave123-py/Convosum/internal/core/database"
	"github.com/markdave123-py/Convosum/internal/core/llm"
	"github.com/markdave123-py/Convosum/internal/services"
)

type App struct {
	DBClient db.DbClient
	LLM      *llm.GeminiLLM
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	llmProvider, err := llm.NewGeminiLLM(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm provider, %w", err)
	}

	userService := services.NewUserService(dbClient)
	analysisService := services.NewAnalysisService(llmProvider, cfg.MaxAnalysis)
	chatService := services.NewChatService(dbClient, analysisService)

	server := NewServer(cfg, userService, chatService)

	return &App{DBClient: dbClient, LLM: llmProvider, Server: server}, nil
}

func (a *App) Close() {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
