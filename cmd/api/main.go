package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recipehub/internal/api"
	"recipehub/internal/community"
	"recipehub/internal/config"
	"recipehub/internal/logger"
	"recipehub/internal/platform/gemini"
	"recipehub/internal/platform/localllm"
	"recipehub/internal/platform/postgres"
	"recipehub/internal/recipe"
	"recipehub/internal/shopping"
)

func main() {
	ctx := context.Background()

	// RECIPEHUB_CONFIG overrides the default ./config.json
	cfg, err := config.Load(os.Getenv("RECIPEHUB_CONFIG"))
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer log.Sync()

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("error connecting to postgres", zap.Error(err))
	}
	defer db.Close()

	recipeStore, err := recipe.NewPostgresStore(db)
	if err != nil {
		log.Fatal("error creating recipe store", zap.Error(err))
	}
	shoppingStore, err := shopping.NewPostgresStore(db)
	if err != nil {
		log.Fatal("error creating shopping store", zap.Error(err))
	}
	chatStore, err := community.NewPostgresStore(db)
	if err != nil {
		log.Fatal("error creating community store", zap.Error(err))
	}

	var (
		chefClient api.ChefClient
		generator  api.RecipeGenerator
	)
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			log.Fatal("error creating gemini client", zap.Error(err))
		}
		defer geminiClient.Close()
		chefClient = geminiClient
		generator = geminiClient
	}
	if cfg.Chef.Provider == config.ProviderLocal {
		chefClient = localllm.NewClient(cfg.LocalLLM.URL, cfg.LocalLLM.Model, log)
	}

	handler := api.NewHandler(recipeStore, shoppingStore, chatStore, chefClient, generator, log)
	handler.ChefProvider = cfg.Chef.Provider
	handler.ImagesDir = cfg.Images.Dir

	r := setupRouter(handler, cfg.Server.AllowedOrigins)
	r.Static("/images", cfg.Images.Dir)

	log.Info("starting server",
		zap.String("addr", cfg.Addr()),
		zap.String("chef_provider", cfg.Chef.Provider),
	)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// setupRouter builds the engine with CORS, the API routes and /metrics.
func setupRouter(handler *api.Handler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
