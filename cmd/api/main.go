package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/victorrosario/videocatalog-backend/api/routes"
	"github.com/victorrosario/videocatalog-backend/internal/catalog"
	castmember "github.com/victorrosario/videocatalog-backend/internal/castmembers"
	category "github.com/victorrosario/videocatalog-backend/internal/categories"
	gender "github.com/victorrosario/videocatalog-backend/internal/genders"
	video "github.com/victorrosario/videocatalog-backend/internal/videos"
	"github.com/victorrosario/videocatalog-backend/pkg/config"
	"github.com/victorrosario/videocatalog-backend/pkg/db"
	"github.com/victorrosario/videocatalog-backend/pkg/logger"
	"github.com/victorrosario/videocatalog-backend/pkg/metrics"
	"github.com/victorrosario/videocatalog-backend/pkg/migrate"
	"github.com/victorrosario/videocatalog-backend/pkg/redis"
	"github.com/victorrosario/videocatalog-backend/pkg/storage/minio"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "catalog-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "catalog-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	storageClient, err := minio.NewClient(context.Background(), cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	uploadMetrics := metrics.NewUploadMetrics(registry)

	saver := catalog.NewSaver(dbClient, storageClient, logg, uploadMetrics)

	categoryService, err := category.NewService(category.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}
	castMemberService, err := castmember.NewService(castmember.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create cast member service", err)
		os.Exit(1)
	}
	genderService, err := gender.NewService(gender.NewRepository(dbClient.DB()), saver)
	if err != nil {
		logg.Error(context.Background(), "failed to create gender service", err)
		os.Exit(1)
	}
	videoService, err := video.NewService(video.NewRepository(dbClient.DB()), saver)
	if err != nil {
		logg.Error(context.Background(), "failed to create video service", err)
		os.Exit(1)
	}
	cachedVideoService := video.NewCachedService(videoService, redisClient, cfg.Redis.VideoCacheTTL, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting catalog api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			storageClient,
			httpMetrics,
			registry,
			categoryService,
			genderService,
			castMemberService,
			cachedVideoService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "catalog api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
