package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"worldlib/internal/auth"
	"worldlib/internal/config"
	"worldlib/internal/handler"
	"worldlib/internal/middleware"
	"worldlib/internal/repository/postgres"
	postgresCatalog "worldlib/internal/repository/postgres/catalog"
	serviceCatalog "worldlib/internal/service/catalog"
	"worldlib/internal/service/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Create JWT verifier against the auth provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Apply embedded schema migrations
	if err := postgres.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create table names
	tables := postgres.NewTableNames()

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgresCatalog.NewUserRepository(repoConfig)
	seriesRepo := postgresCatalog.NewSeriesRepository(repoConfig)
	bookRepo := postgresCatalog.NewBookRepository(repoConfig)
	chapterRepo := postgresCatalog.NewChapterRepository(repoConfig)
	statsRepo := postgresCatalog.NewStatsRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	seriesService := serviceCatalog.NewSeriesService(seriesRepo, bookRepo, txManager, logger)
	bookService := serviceCatalog.NewBookService(bookRepo, seriesRepo, chapterRepo, logger)
	chapterService := serviceCatalog.NewChapterService(chapterRepo, bookRepo, txManager, logger)
	browseService := serviceCatalog.NewBrowseService(bookRepo, userRepo, statsRepo, seriesService, logger)
	coverUploader := storage.NewCoverUploader(cfg, logger)

	// Create handlers
	seriesHandler := handler.NewSeriesHandler(seriesService, logger)
	bookHandler := handler.NewBookHandler(bookService, chapterService, logger)
	chapterHandler := handler.NewChapterHandler(chapterService, logger)
	browseHandler := handler.NewBrowseHandler(browseService, logger)
	uploadHandler := handler.NewUploadHandler(coverUploader, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Public catalog routes
	mux.HandleFunc("GET /api/books", browseHandler.ListPublicBooks)
	mux.HandleFunc("GET /api/books/pages", browseHandler.CountPublicBookPages) // Must come before {id} route
	mux.HandleFunc("GET /api/books/{id}", bookHandler.GetBook)
	mux.HandleFunc("GET /api/read/chapters/{id}", chapterHandler.GetPublicChapter)
	mux.HandleFunc("GET /api/authors/{username}/series", browseHandler.AuthorSeries)
	mux.HandleFunc("GET /api/authors/{username}/stats", browseHandler.AuthorStats)

	// Series routes
	mux.HandleFunc("GET /api/series", seriesHandler.ListSeries)
	mux.HandleFunc("POST /api/series", seriesHandler.CreateSeries)
	mux.HandleFunc("PATCH /api/series/{id}", seriesHandler.RenameSeries)
	mux.HandleFunc("DELETE /api/series/{id}", seriesHandler.DeleteSeries)

	// Book routes
	mux.HandleFunc("POST /api/books", bookHandler.CreateBook)
	mux.HandleFunc("PATCH /api/books/{id}", bookHandler.UpdateBook)
	mux.HandleFunc("DELETE /api/books/{id}", bookHandler.DeleteBook)
	mux.HandleFunc("GET /api/books/{id}/chapters", bookHandler.ChaptersIndex)
	mux.HandleFunc("POST /api/books/{id}/chapters", bookHandler.CreateChapter)

	// Chapter routes
	mux.HandleFunc("GET /api/chapters/{id}", chapterHandler.GetChapter)
	mux.HandleFunc("PUT /api/chapters/{id}", chapterHandler.UpdateChapter)
	mux.HandleFunc("DELETE /api/chapters/{id}", chapterHandler.DeleteChapter)

	// Upload routes
	mux.HandleFunc("POST /api/uploads/cover", uploadHandler.NewCoverUpload)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
