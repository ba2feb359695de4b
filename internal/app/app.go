package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/snipvault/snipvault/internal/config"
	dbpostgres "github.com/snipvault/snipvault/internal/database/postgres"
	"github.com/snipvault/snipvault/internal/service"
	"github.com/snipvault/snipvault/pkg/postgres"
	"golang.org/x/sync/errgroup"

	api "github.com/snipvault/snipvault/internal/api/http/v1"
)

// Run wires the application together and blocks until the context is
// cancelled or a component fails.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	db, err := postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := postgres.RunMigrations("file://migrations", cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	userRepo := dbpostgres.NewUserRepository(db)
	snippetRepo := dbpostgres.NewSnippetRepository(db)
	commentRepo := dbpostgres.NewCommentRepository(db)
	upvoteRepo := dbpostgres.NewUpvoteRepository(db)
	shareCodeRepo := dbpostgres.NewShareCodeRepository(db)

	snippetSvc := service.NewSnippetService(snippetRepo)
	shareCodeSvc := service.NewShareCodeService(shareCodeRepo, snippetRepo,
		service.WithTTL(cfg.ShareCode.TTL),
		service.WithGenerator(service.NewCodeGenerator(cfg.ShareCode.Length)),
	)

	logger := httplog.NewLogger("snipvault", httplog.Options{
		JSON:    cfg.Env == config.EnvProd,
		Concise: cfg.Env != config.EnvProd,
	})

	router := api.NewRouter(logger, api.Services{
		Auth:       service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL),
		Snippets:   snippetSvc,
		ShareCodes: shareCodeSvc,
		Comments:   service.NewCommentService(commentRepo, snippetRepo),
		Upvotes:    service.NewUpvoteService(upvoteRepo, snippetRepo),
	})

	sweeper := service.NewShareCodeSweeper(shareCodeRepo, logger.Logger, cfg.ShareCode.SweepInterval)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sweeper.Run(ctx)
	})

	g.Go(func() error {
		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
