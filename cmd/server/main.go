package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mfallon/exertrack/internal/db"
	"github.com/mfallon/exertrack/internal/dbconfig"
	"github.com/mfallon/exertrack/internal/events"
	"github.com/mfallon/exertrack/internal/exercises"
	"github.com/mfallon/exertrack/internal/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database and make sure the schema exists
	dbCfg := dbconfig.NewConfigFromEnv()
	pool, err := db.Connect(ctx, dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	if err := db.Setup(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	log.Info().
		Str("database", dbCfg.Database).
		Str("host", dbCfg.Host).
		Msg("connected to database")

	// Activity events go to NATS when a broker is configured, the log
	// otherwise.
	var publisher events.Publisher = events.NewLogPublisher()
	if cfg.NATSURL != "" {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NATSURL
		jsPublisher, err := events.NewJetStreamPublisher(ctx, jsCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer jsPublisher.Close()
		publisher = jsPublisher
	}

	// Wire services
	userApp := users.NewApp(users.NewRepository(pool))
	exerciseApp := exercises.NewApp(exercises.NewRepository(pool), userApp, publisher, clockwork.NewRealClock())

	server := setupServer(cfg, users.NewHandler(userApp), exercises.NewHandler(exerciseApp))

	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
