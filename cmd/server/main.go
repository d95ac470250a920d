package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"reelguess/internal/config"
	"reelguess/internal/database"
	"reelguess/internal/handlers"
	"reelguess/internal/repository"
	"reelguess/internal/security"
	"reelguess/internal/service"
)

func main() {
	// Load .env when present, then configuration from the environment
	_ = godotenv.Load()
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed the demo corpus so a fresh install has something to play
	if err := db.SeedDemoCorpus(); err != nil {
		log.Printf("Warning: Failed to seed demo corpus: %v", err)
	}

	// Initialize store and services
	store := repository.NewStore(db)
	userRepo := repository.NewUserRepository(db)

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenDuration)
	authService := service.NewAuthService(userRepo, tokens)

	selector := service.NewSelector(
		rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg.SelectorMaxDraws,
	)
	gameService := service.NewGameService(store, selector)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(gameService)
	mw := handlers.NewMiddleware(tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/game/sessions", mw.RequireAuth(gameHandler.CreateSession))
	mux.HandleFunc("GET /api/game/sessions/current", mw.RequireAuth(gameHandler.GetCurrentSession))
	mux.HandleFunc("POST /api/game/reviews/next", mw.RequireAuth(gameHandler.NextReview))
	mux.HandleFunc("POST /api/game/answers", mw.RequireAuth(gameHandler.SubmitAnswer))
	mux.HandleFunc("GET /api/movies", mw.RequireAuth(gameHandler.ListMovies))

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server and wait for shutdown signal
	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// In-flight requests (and their transactions) get a grace period
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
