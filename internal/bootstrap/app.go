package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"recommend-backend/internal/catalog"
	"recommend-backend/internal/explain"
	openai "recommend-backend/internal/llm/openai"
	"recommend-backend/internal/recommend"
	"recommend-backend/internal/recommendations"
	"recommend-backend/internal/services/health"
	"recommend-backend/internal/shared/config"
	"recommend-backend/internal/shared/metrics"
	"recommend-backend/internal/shared/server"
	"recommend-backend/internal/shared/storage/db"
	"recommend-backend/internal/shared/storage/object"
	localstore "recommend-backend/internal/shared/storage/object/local"
	s3store "recommend-backend/internal/shared/storage/object/s3"
	"recommend-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Catalog          *catalog.CachedRepo
	Pipeline         *recommend.Pipeline
	Explainer        explain.Generator
	RecommendService *recommendations.Service
	RecommendHandler *recommendations.Handler
	Health           *health.Service
}

// Build wires configuration into repositories, services and the router.
func Build(cfg config.Config) (*App, error) {
	telemetry.Init(telemetry.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store object.ObjectStore
	if cfg.CatalogSource != "postgres" {
		store, err = buildStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		RecommendHandler: app.RecommendHandler,
		Health:           app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":            cfg.Env,
		"catalog_source": cfg.CatalogSource,
		"object_store":   cfg.ObjectStoreType,
		"explainer":      explainerName(app.Explainer),
		"top_n":          app.Pipeline.TopN,
		"discovery":      app.Pipeline.DiscoveryRatio,
	})
	return app, nil
}

// buildDB connects only when catalogs come from Postgres.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.CatalogSource != "postgres" {
		return nil, nil
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.DefaultLambdaOptions().Merge(PoolOverrides(cfg)))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions().Merge(PoolOverrides(cfg)))
	}
	if err != nil {
		return nil, err
	}
	if err := metrics.RegisterDBStats(sqlDB, "catalog"); err != nil {
		telemetry.Warn("bootstrap.db_metrics", map[string]any{"error": err})
	}

	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

// PoolOverrides maps the DB_* settings onto pool options; zero values keep
// the runtime defaults.
func PoolOverrides(cfg config.Config) db.Options {
	return db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		ConnMaxIdleTime: cfg.DBConnIdleTime,
		PingTimeout:     cfg.DBPingTimeout,
	}
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	var repo catalog.Repo
	if app.DB != nil {
		repo = catalog.NewPGRepo(app.DB)
	} else {
		repo = catalog.NewObjectRepo(app.Store)
	}
	app.Catalog = catalog.NewCachedRepo(repo, app.Config.CatalogCacheSize, app.Config.CatalogCacheTTL)

	pipeline := recommend.NewPipeline(recommend.NewRand())
	pipeline.TopN = app.Config.TopN
	pipeline.DiscoveryRatio = app.Config.DiscoveryRatio
	app.Pipeline = pipeline

	explainer, err := buildExplainer(app.Config)
	if err != nil {
		return err
	}
	app.Explainer = explainer

	app.RecommendService = &recommendations.Service{
		Catalog:   app.Catalog,
		Pipeline:  pipeline,
		Explainer: explainer,
	}
	app.RecommendHandler = recommendations.NewHandler(app.RecommendService)
	app.Health = health.NewService(app.DB)
	return nil
}

// buildExplainer chains the LLM in front of the template generator when a
// provider is configured; otherwise only templates are used.
func buildExplainer(cfg config.Config) (explain.Generator, error) {
	if !cfg.LLMEnabled() {
		return explain.NewFallback(explain.TemplateGenerator{}), nil
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	if err != nil {
		return nil, err
	}
	return explain.NewFallback(
		explain.NewLLMGenerator(client, explain.LLMOptions{}),
		explain.TemplateGenerator{},
	), nil
}

func explainerName(g explain.Generator) string {
	if g == nil {
		return "none"
	}
	if f, ok := g.(*explain.FallbackGenerator); ok {
		return strings.Join(f.Names(), ",")
	}
	return g.Name()
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
