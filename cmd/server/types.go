package main

import (
	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/aibutsu/server/aibutsu/shares"
	"github.com/aibutsu/server/aibutsu/tokens"
	"github.com/aibutsu/server/internal/answer"
	"github.com/aibutsu/server/internal/chatlog"
	"github.com/aibutsu/server/internal/config"
	"github.com/aibutsu/server/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db           *pgxpool.Pool
	config       *config.Config
	tokenRepo    *tokens.Repository
	turnRepo     *conversations.Repository
	shareRepo    *shares.Repository
	services     *Services
	resetService *tokens.ResetService
	router       *gin.Engine
}

// holds all external service clients and the pipelines built on them
type Services struct {
	LLM          *llm.Provider
	Orchestrator *answer.Orchestrator
	Adjustor     *tokens.RewardAdjustor
	ChatLog      *chatlog.Client
}
