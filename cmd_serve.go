package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sengkeat-dex/Tokenize/cache"
	"github.com/sengkeat-dex/Tokenize/catalog"
	"github.com/sengkeat-dex/Tokenize/handlers"
	"github.com/sengkeat-dex/Tokenize/ingest"
	"github.com/sengkeat-dex/Tokenize/ledger"
	"github.com/sengkeat-dex/Tokenize/metrics"
	"github.com/sengkeat-dex/Tokenize/middleware"
	"github.com/sengkeat-dex/Tokenize/repositories"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

Components are read from Postgres when DATABASE_URL is set and from the
CSV file at CSV_PATH otherwise. REDIS_URL puts a cache in front of them.
The ledger is restored from SNAPSHOT_PATH at start and written back on
shutdown.`,
	RunE: runServe,
}

var serveListen string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if serveListen != "" {
		cfg.ListenAddr = serveListen
	}

	l := ledger.New(ledger.WithLogger(log.With().Str("component", "ledger").Logger()))
	if cfg.SnapshotPath != "" {
		if err := l.LoadFile(cfg.SnapshotPath); err != nil {
			return err
		}
	}

	m := metrics.New()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m.MustRegister(reg, l)

	source, closeSource, err := openComponents(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		redisClient := redis.NewClient(opt)
		defer redisClient.Close()

		pong, err := redisClient.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		log.Info().Str("pong", pong).Msg("connected to redis")
		source = cache.NewComponents(source, redisClient, cfg.CacheTTL, m)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log.With().Str("component", "http").Logger()),
		middleware.Metrics(m),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := router.Group("/api", middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
	handlers.Register(api,
		handlers.NewComponentHandler(source),
		handlers.NewAssetHandler(l, m),
		handlers.NewWalletHandler(l, m),
	)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if cfg.SnapshotPath != "" {
		if err := l.SaveFile(cfg.SnapshotPath); err != nil {
			return err
		}
		log.Info().Str("path", cfg.SnapshotPath).Msg("ledger snapshot saved")
	}
	return nil
}

// openComponents picks the component source: Postgres when configured,
// the CSV catalogue otherwise.
func openComponents(ctx context.Context) (repositories.ComponentReader, func(), error) {
	if cfg.DatabaseURL != "" {
		db, err := repositories.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewComponentRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info().Msg("serving components from postgres")
		return repo, func() { db.Close() }, nil
	}

	components, err := ingest.LoadFile(cfg.CSVPath)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("path", cfg.CSVPath).Int("components", len(components)).Msg("serving components from csv")
	return catalog.New(components), func() {}, nil
}
