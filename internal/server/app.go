// Package server initializes and runs the ReviewPulse web server: it
// connects to the database, loads the trained artifacts, wires the
// services and serves HTTP until shutdown.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/reviewpulse/internal/artifactstore"
	"github.com/dmitrijs2005/reviewpulse/internal/common"
	"github.com/dmitrijs2005/reviewpulse/internal/logging"
	"github.com/dmitrijs2005/reviewpulse/internal/sentiment"
	"github.com/dmitrijs2005/reviewpulse/internal/server/config"
	"github.com/dmitrijs2005/reviewpulse/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/reviewpulse/internal/server/services"
	"github.com/dmitrijs2005/reviewpulse/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *http.Server
}

// NewApp assembles the application: database and migrations, artifact
// loading, services and the router. Any error here is fatal for startup.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if cfg.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret key generation error: %w", err)
		}
		cfg.SecretKey = key
		logger.Warn(ctx, "no secret key configured, generated an ephemeral one; sessions will not survive a restart")
	}

	repos, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	predictor, err := loadPredictor(ctx, cfg)
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("artifact load error: %w", err)
	}

	userService := services.NewUserService(repos.Users(), repos.Sessions(), cfg)
	predictionService := services.NewPredictionService(predictor, repos.Predictions(), logger)

	router := web.NewRouter(web.NewHandlers(userService, predictionService, logger))

	srv := &http.Server{
		Addr:    cfg.EndpointAddrHTTP,
		Handler: router,
	}

	return &App{config: cfg, logger: logger, repos: repos, server: srv}, nil
}

// loadPredictor fetches both artifacts from the configured store and
// builds the predictor. A set S3 bucket takes precedence over the local
// artifact directory.
func loadPredictor(ctx context.Context, cfg *config.Config) (*sentiment.Predictor, error) {

	var store artifactstore.Store
	if cfg.S3Bucket != "" {
		s3store, err := artifactstore.NewS3Store(ctx, artifactstore.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			return nil, err
		}
		store = s3store
	} else {
		store = artifactstore.NewLocalStore(cfg.ArtifactDir)
	}

	vecData, err := store.Load(ctx, artifactstore.VectorizerArtifact)
	if err != nil {
		return nil, err
	}
	vectorizer, err := sentiment.DecodeVectorizer(bytes.NewReader(vecData))
	if err != nil {
		return nil, err
	}

	clfData, err := store.Load(ctx, artifactstore.ClassifierArtifact)
	if err != nil {
		return nil, err
	}
	classifier, err := sentiment.DecodeClassifier(bytes.NewReader(clfData))
	if err != nil {
		return nil, err
	}

	return sentiment.NewPredictor(vectorizer, classifier)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run applies migrations, starts the HTTP server and blocks until the
// context is cancelled or a termination signal arrives, then shuts down
// gracefully.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	if err := app.repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	defer app.repos.Close()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}
