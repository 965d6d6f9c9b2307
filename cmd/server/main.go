package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	staticcatalog "scenariogen/internal/adapter/catalog/static"
	httpadapter "scenariogen/internal/adapter/http"
	metricsinmem "scenariogen/internal/adapter/metrics/inmemory"
	gormrepo "scenariogen/internal/adapter/repo/gorm"
	"scenariogen/internal/adapter/repo/memory"
	statictemplate "scenariogen/internal/adapter/template/static"
	"scenariogen/internal/app/generate"
	"scenariogen/internal/app/mapquery"
	"scenariogen/internal/app/ports"
	"scenariogen/internal/app/templates"
	"scenariogen/internal/domain/generation"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	maps, txManager := mustBuildRepos()
	templateProvider := statictemplate.Provider{Root: resolveTemplatesDir()}
	catalogProvider := &staticcatalog.Provider{File: strings.TrimSpace(os.Getenv("SCENARIOGEN_CATALOG_FILE"))}
	if _, err := catalogProvider.Catalog(context.Background()); err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		GenerateUC: generate.UseCase{
			TxManager: txManager,
			Maps:      maps,
			Templates: templateProvider,
			Catalog:   catalogProvider,
			Metrics:   kpiRecorder,
			Config:    buildGenerationConfig(),
			Now:       time.Now,
		},
		MapsUC:      mapquery.UseCase{Maps: maps},
		TemplatesUC: templates.UseCase{Provider: templateProvider},
		KPI:         kpiRecorder,
		CORSOrigins: splitList(os.Getenv("SCENARIOGEN_CORS_ORIGINS")),
	}

	addr := envOr("SCENARIOGEN_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("scenariogen server listening on %s (templates: %s)", addr, templateProvider.Root)
	s.Spin()
}

func mustBuildRepos() (ports.MapRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("SCENARIOGEN_DB_DSN"))
	if dsn == "" {
		log.Println("SCENARIOGEN_DB_DSN not set, maps are kept in memory")
		store := memory.NewStore()
		return memory.NewMapRepo(store), memory.NewTxManager(store)
	}
	db, err := gormrepo.OpenPostgres(dsn, gormrepo.Options{
		MaxOpenConns: intEnv("SCENARIOGEN_DB_MAX_CONNS", 10),
		Debug:        intEnv("SCENARIOGEN_DEBUG", 0) == 1,
	})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("SCENARIOGEN_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return gormrepo.NewMapRepo(db), gormrepo.NewTxManager(db)
}

func buildGenerationConfig() generation.Config {
	cfg := generation.DefaultConfig()
	cfg.Composer.LeaderPasses = intEnv("SCENARIOGEN_LEADER_PASSES", cfg.Composer.LeaderPasses)
	cfg.Composer.TightenFailLimit = intEnv("SCENARIOGEN_TIGHTEN_FAILS", cfg.Composer.TightenFailLimit)
	cfg.VerifyAccess = intEnv("SCENARIOGEN_VERIFY_ACCESS", 0) == 1

	level := slog.LevelInfo
	if intEnv("SCENARIOGEN_DEBUG", 0) == 1 {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg
}

func resolveTemplatesDir() string {
	if dir := strings.TrimSpace(os.Getenv("SCENARIOGEN_TEMPLATES_DIR")); dir != "" {
		return dir
	}
	return "./templates"
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
