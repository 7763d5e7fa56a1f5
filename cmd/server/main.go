package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"portal/internal/auth"
	"portal/internal/config"
	"portal/internal/fetcher"
	"portal/internal/fetcher/github"
	"portal/internal/handler"
	"portal/internal/middleware"
	"portal/internal/repository/postgres"
	postgresDocsys "portal/internal/repository/postgres/docsystem"
	"portal/internal/search"
	serviceAuth "portal/internal/service/auth"
	serviceDocsys "portal/internal/service/docsystem"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spf13/afero"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()
	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	pageRepo := postgresDocsys.NewPageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	indexer, indexCloser, err := search.NewIndexer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup search index: %v", err)
	}
	defer indexCloser.Close()

	// Fetchers: the local fetcher never escapes LOCAL_FETCH_ROOT
	localRoot := afero.NewBasePathFs(afero.NewOsFs(), cfg.LocalFetchRoot)
	fetchers := fetcher.NewDefaultRegistry(localRoot, github.NewClient(cfg.GitHubToken))
	catalog, err := fetcher.LoadCatalog(fetchers)
	if err != nil {
		log.Fatalf("Failed to load fetcher catalog: %v", err)
	}
	logger.Info("fetchers registered", "types", fetchers.Types())

	visibility := serviceAuth.NewPublishedVisibility()
	pageService := serviceDocsys.NewPageService(pageRepo, txManager, indexer, visibility, logger)
	importService := serviceDocsys.NewImportService(pageRepo, fetchers, indexer, cfg.FetchTimeout, logger)

	pageHandler := handler.NewPageHandler(pageService, importService, logger)
	fetcherHandler := handler.NewFetcherHandler(catalog)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("GET /api/fetchers", fetcherHandler.ListFetchers)

	// Page routes (the literal _import segment wins over {id})
	mux.HandleFunc("POST /api/apis/{api}/pages/_import", pageHandler.ImportPages)
	mux.HandleFunc("POST /api/apis/{api}/pages", pageHandler.CreatePage)
	mux.HandleFunc("GET /api/apis/{api}/pages", pageHandler.ListPages)
	mux.HandleFunc("GET /api/apis/{api}/pages/{id}", pageHandler.GetPage)

	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.Authenticate(jwtVerifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 30*time.Second, // imports run inside the request
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
