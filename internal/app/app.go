package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres"
	applicationrepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/application"
	auditrepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/audit"
	companyrepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/company"
	sourcerepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/source"
	userrepo "github.com/heartmarshall/jobtrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/jobtrack-backend/internal/auth"
	"github.com/heartmarshall/jobtrack-backend/internal/config"
	applicationsvc "github.com/heartmarshall/jobtrack-backend/internal/service/application"
	companysvc "github.com/heartmarshall/jobtrack-backend/internal/service/company"
	sourcesvc "github.com/heartmarshall/jobtrack-backend/internal/service/source"
	usersvc "github.com/heartmarshall/jobtrack-backend/internal/service/user"
	"github.com/heartmarshall/jobtrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/jobtrack-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and HTTP transport, and
// serves until ctx is cancelled. Shutdown is graceful within
// Server.ShutdownTimeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	companies := companyrepo.New(pool)
	sources := sourcerepo.New(pool)
	applications := applicationrepo.New(pool)
	users := userrepo.New(pool)
	audit := auditrepo.New(pool)

	companySvc := companysvc.NewService(logger, companies, audit, txm, cfg.Directory)
	sourceSvc := sourcesvc.NewService(logger, sources, audit, txm)
	applicationSvc := applicationsvc.NewService(logger, applications, companySvc, sourceSvc, audit, txm)
	userSvc := usersvc.NewService(logger, users, jwtManager, cfg.Auth)

	mux := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(pool, BuildVersion()),
		Auth:        rest.NewAuthHandler(userSvc, logger),
		Company:     rest.NewCompanyHandler(companySvc, logger),
		Source:      rest.NewSourceHandler(sourceSvc, logger),
		Application: rest.NewApplicationHandler(applicationSvc, logger),
	})

	rateLimiter := middleware.NewRateLimiter(5 * time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMinute),
		middleware.Auth(jwtManager),
	)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
