package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"

	"github.com/google/generative-ai-go/genai"

	"bookwise/be/internal/auth"
	"bookwise/be/internal/book"
	"bookwise/be/internal/booksearch"
	"bookwise/be/internal/catalog"
	"bookwise/be/internal/config"
	"bookwise/be/internal/covers"
	HDb "bookwise/be/internal/db"
	"bookwise/be/internal/interpreter"
	"bookwise/be/internal/llm"
	"bookwise/be/internal/user"
	"bookwise/be/internal/verify"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	cfg, err := config.LoadConfig(
		envOr("BOOKWISE_CONFIG", "config/config.yaml"),
		envOr("BOOKWISE_ENV", "config/.env"),
	)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	db, err := HDb.NewHDb("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("Failed to close database: %v", err)
		}
	}()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     cfg.CORS.AllowMethods,
		AllowHeaders:     cfg.CORS.AllowHeaders,
		ExposeHeaders:    cfg.CORS.ExposeHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	}))

	// Language model provider. Gemini takes over when its key is present;
	// otherwise any OpenAI-compatible endpoint (Groq included) is used.
	var provider llm.AIProvider
	if cfg.GeminiAI.APIKey != "" {
		geminiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAI.APIKey))
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		provider = llm.NewGeminiAIProvider(geminiClient)
	} else {
		provider = llm.NewOpenAIProvider(llm.NewOpenAICompatibleClient(cfg.LLM.APIKey, cfg.LLM.BaseURL))
	}

	interpreterService := interpreter.NewServiceImpl(provider, cfg.LLM.Model)

	adapters := []catalog.Adapter{
		catalog.NewGoogleBooks(cfg.Verify.UserAgent),
		catalog.NewGutendex(cfg.Verify.UserAgent),
		catalog.NewInternetArchive(cfg.Verify.UserAgent),
		catalog.NewACO(cfg.Verify.UserAgent),
	}

	verifier := verify.NewVerifier(cfg.Verify)

	var coverFinder covers.Finder = covers.NoopFinder{}
	if cfg.Covers.SerpAPIKey != "" {
		coverFinder = covers.NewSerpFinder(cfg.Covers.SerpAPIKey)
	}

	// Book catalog and search sessions
	bookRepository := book.NewRepositoryImpl(db)
	bookService := book.NewServiceImpl(bookRepository)
	bookController := book.NewControllerImpl(bookService)
	bookController.RegisterRoutes(router)

	searchService := booksearch.NewServiceImpl(
		interpreterService,
		adapters,
		verifier,
		coverFinder,
		bookRepository,
		cfg.Search,
	)
	searchController := booksearch.NewControllerImpl(searchService)
	searchController.RegisterRoutes(router)

	// User management
	userRepository := user.NewRepositoryImpl(db)
	userService := user.NewServiceImpl(userRepository)
	userController := user.NewControllerImpl(userService)

	requireAdmin := func(ctx *gin.Context) {
		auth.RequireAuth(cfg.JWT)(ctx)
		if !ctx.IsAborted() {
			auth.RequireRole(string(user.RoleAdmin))(ctx)
		}
	}
	userController.RegisterRoutes(router, requireAdmin)

	// Auth management
	authService := auth.NewServiceImpl(userService, cfg.JWT)
	authController := auth.NewControllerImpl(authService)
	authController.RegisterRoutes(router)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
