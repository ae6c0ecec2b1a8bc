package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/neurolink/internal/application"
	appai "github.com/bryanwahyu/neurolink/internal/application/ai"
	appsentiment "github.com/bryanwahyu/neurolink/internal/application/sentiment"
	"github.com/bryanwahyu/neurolink/internal/config"
	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	"github.com/bryanwahyu/neurolink/internal/infra/ai/openai"
	"github.com/bryanwahyu/neurolink/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/neurolink/internal/infra/db/mysql"
	"github.com/bryanwahyu/neurolink/internal/infra/db/postgres"
	"github.com/bryanwahyu/neurolink/internal/infra/httpserver"
	"github.com/bryanwahyu/neurolink/internal/infra/logging"
	minioStore "github.com/bryanwahyu/neurolink/internal/infra/storage"
	"github.com/bryanwahyu/neurolink/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// init repo
	store, checkers, closeDB, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("database init error", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closeDB()

	// init AI client, provider dipilih sekali dari credential
	provider := cfg.Provider()
	var client ai.Client
	if provider != ai.ProviderNone {
		baseURL, model := cfg.AI.PrimaryBaseURL, cfg.AI.PrimaryModel
		if provider == ai.ProviderSecondary {
			baseURL, model = cfg.AI.SecondaryBaseURL, cfg.AI.SecondaryModel
		}
		c, err := openai.NewClient(provider, openai.Settings{
			APIKey:    cfg.AI.APIKey,
			Model:     model,
			BaseURL:   baseURL,
			Timeout:   cfg.AI.Timeout,
			MaxTokens: cfg.AI.MaxTokens,
		})
		if err != nil {
			logger.Fatal("ai client init error", zap.Error(err))
		}
		logger.Info("ai provider selected", zap.String("provider", provider.Vendor()), zap.String("model", c.Model()))
		client = c
	}

	// init minio (optional)
	var artifacts ai.ArtifactStore
	if cfg.Minio.Endpoint != "" {
		s, err := minioStore.New(ctx, minioStore.Options{
			Endpoint:   cfg.Minio.Endpoint,
			Region:     cfg.Minio.Region,
			Bucket:     cfg.Minio.BucketName,
			AccessKey:  cfg.Minio.AccessKey,
			SecretKey:  cfg.Minio.SecretKey,
			UseSSL:     cfg.Minio.UseSSL,
			PresignTTL: cfg.Minio.PresignTTL,
		})
		if err != nil {
			logger.Fatal("minio init error", zap.Error(err))
		}
		artifacts = s
		checkers["storage"] = middleware.CheckFunc(s.Ping)
	}

	// init service
	clock := application.SystemClock{}
	aiSvc := appai.NewService(appai.Options{
		Provider:    provider,
		Client:      client,
		Synthesizer: appai.NewSynthesizer(nil),
		Logger:      logger.Named("ai"),
		Clock:       clock,
		Store:       store,
		Artifacts:   artifacts,
	})
	sentSvc := appsentiment.NewService(store.Sentiments, clock)

	// init router
	handler := httpserver.NewRouter(httpserver.Deps{
		AI:             aiSvc,
		Sentiment:      sentSvc,
		Logger:         logger.Named("http"),
		Metrics:        middleware.NewMetrics(),
		Limiter:        middleware.NewRateLimiter(ctx, cfg.RateLimit.Burst, cfg.RateLimit.RequestsPerMinute),
		Checkers:       checkers,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

// openStore connects the configured driver and returns its repositories.
func openStore(ctx context.Context, cfg *config.Config) (appai.Store, map[string]middleware.HealthChecker, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
	case "postgres":
		db, err = postgres.Connect(ctx, cfg.PostgresDSN())
	default:
		store := appai.Store{
			Analyses:   memory.NewAnalysisRepository(),
			Sentiments: memory.NewSentimentRepository(),
			Incidents:  memory.NewIncidentRepository(),
		}
		return store, map[string]middleware.HealthChecker{}, func() {}, nil
	}
	if err != nil {
		return appai.Store{}, nil, nil, err
	}

	var store appai.Store
	if cfg.Database.Driver == "mysql" {
		store = appai.Store{
			Analyses:   mysqlp.NewAnalysisRepository(db),
			Sentiments: mysqlp.NewSentimentRepository(db),
			Incidents:  mysqlp.NewIncidentRepository(db),
		}
	} else {
		store = appai.Store{
			Analyses:   postgres.NewAnalysisRepository(db),
			Sentiments: postgres.NewSentimentRepository(db),
			Incidents:  postgres.NewIncidentRepository(db),
		}
	}
	checkers := map[string]middleware.HealthChecker{
		"database": middleware.PingDB(db),
	}
	return store, checkers, func() { db.Close() }, nil
}
