package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"path/filepath"

	"portal/internal/config"
	models "portal/internal/domain/models/docsystem"
	docsysSvc "portal/internal/domain/services/docsystem"
	"portal/internal/fetcher"
	"portal/internal/fetcher/local"
	"portal/internal/repository/postgres"
	postgresDocsys "portal/internal/repository/postgres/docsystem"
	"portal/internal/search"
	serviceDocsys "portal/internal/service/docsystem"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't import pages")
	importDir := flag.String("import-dir", "", "Local directory to import as pages")
	apiID := flag.String("api", "seed-api", "API the imported pages belong to")
	contributor := flag.String("contributor", "seed", "Contributor stamped on imported pages")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Printf("📋 Ensuring schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly || *importDir == "" {
		return
	}

	absDir, err := filepath.Abs(*importDir)
	if err != nil {
		log.Fatalf("Invalid import directory: %v", err)
	}

	indexer, indexCloser, err := search.NewIndexer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup search index: %v", err)
	}
	defer indexCloser.Close()

	// The seed tool trusts its operator: the fetch root is the directory itself
	fetchers := fetcher.NewRegistry()
	fetchers.Register(local.SourceType, local.NewFactory(afero.NewBasePathFs(afero.NewOsFs(), absDir)))

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	importService := serviceDocsys.NewImportService(
		postgresDocsys.NewPageRepository(repoConfig),
		fetchers,
		indexer,
		cfg.FetchTimeout,
		logger,
	)

	configuration, _ := json.Marshal(local.Config{Root: "/"})
	log.Printf("📝 Importing %s into API %s...", absDir, *apiID)
	result, err := importService.ImportDirectory(ctx, &docsysSvc.ImportRequest{
		APIID:       *apiID,
		Source:      &models.PageSource{Type: local.SourceType, Configuration: configuration},
		Contributor: *contributor,
	})
	if err != nil {
		log.Fatalf("❌ Import failed: %v", err)
	}

	log.Printf("🎉 Imported %d folders and %d pages (%d skipped, %d index failures, run %s)",
		len(result.Folders), len(result.Pages), len(result.Skipped), result.IndexFailures, result.RunID)
}
