package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/api"
	"github.com/rpupo63/portfolio-site/cache"
	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg.Log)

	log.Info().Str("dbType", cfg.Database.Type).Msg("Initializing app...")

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if cfg.Database.GenerateModels {
		log.Info().Msg("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if cfg.Database.GenerateColumnReport {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	if cfg.Database.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
		log.Info().Msg("Database schema migrated")
	}

	siteCache := newCache(cfg.Cache)
	currentDB := database.New(db, siteCache)

	mailer, err := services.NewMailer(cfg.Mail)
	if err != nil {
		log.Warn().Err(err).Msg("Mail transport unavailable, notifications disabled")
		mailer = services.NopMailer{}
	}
	notifier := services.NewNotifier(mailer, cfg.Mail.NotifyEmail)
	portfolio := services.NewPortfolio(currentDB, siteCache, cfg.Cache.TTL, notifier)

	renderer, err := api.NewTemplateRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing page templates")
	}

	if cfg.Admin.Password == "" {
		log.Warn().Msg("BACKEND_PASSWORD is not set, admin login is disabled")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, currentDB, portfolio, renderer)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogging configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

// newCache uses Redis when CACHE_URL is set and reachable, and an in-process cache otherwise.
func newCache(cfg config.CacheConfig) cache.Cache {
	if cfg.URL == "" {
		return cache.NewMemory(cfg.TTL)
	}
	client, err := cache.NewRedisClient(context.Background(), cfg.URL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-process cache")
		return cache.NewMemory(cfg.TTL)
	}
	return cache.NewRedis(client, cfg.KeyPrefix)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
