package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/about"
	aboutrepo "github.com/ovaphlow/pitchfork/service-portfolio/internal/about/repo"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth"
	authrepo "github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/repo"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/config"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/project"
	projectrepo "github.com/ovaphlow/pitchfork/service-portfolio/internal/project/repo"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/router"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/services"
	servicerepo "github.com/ovaphlow/pitchfork/service-portfolio/internal/services/repo"
	"github.com/ovaphlow/pitchfork/service-portfolio/pkg/database"
	"github.com/ovaphlow/pitchfork/service-portfolio/pkg/utilities"
)

type tableBootstrapper interface {
	EnsureTable(ctx context.Context) error
}

func main() {
	// load .env file if present so os.Getenv picks values from it
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("config: %v", err)
	}
	sugar.Infow("starting portfolio api", "addr", cfg.ServerAddr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, database.Config{
		DSN:      cfg.DatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
		TimeZone: cfg.DatabaseTimeZone,
	})
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	handler, err := build(ctx, cfg, db, sugar)
	if err != nil {
		sugar.Fatalf("bootstrap: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()
	sugar.Info("service is running; press Ctrl+C to stop")

	<-ctx.Done()
	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}
	sugar.Info("goodbye")
}

// build creates the tables, seeds the admin account and mounts the routes.
func build(ctx context.Context, cfg *config.Config, db *sqlx.DB, sugar *zap.SugaredLogger) (http.Handler, error) {
	users := authrepo.NewUserRepo(db)
	aboutRepo := aboutrepo.NewRepo(db)
	projectRepo := projectrepo.NewRepo(db)
	serviceRepo := servicerepo.NewRepo(db)

	for name, t := range map[string]tableBootstrapper{
		"usercredentials": users,
		"about":           aboutRepo,
		"projects":        projectRepo,
		"services":        serviceRepo,
	} {
		if err := t.EnsureTable(ctx); err != nil {
			return nil, fmt.Errorf("ensure table %s: %w", name, err)
		}
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := auth.NewAuthService(users, nil, tokens)

	created, password, err := authSvc.EnsureDefaultAdmin(ctx, auth.SeedAdmin{
		Email:    cfg.SeedAdminEmail,
		FullName: cfg.SeedAdminName,
		Password: cfg.SeedAdminPassword,
	})
	if err != nil {
		return nil, err
	}
	if created {
		if cfg.SeedAdminPassword == "" {
			sugar.Warnw("created default admin with a generated password; change it after first login",
				"email", cfg.SeedAdminEmail, "password", password)
		} else {
			sugar.Infow("created default admin", "email", cfg.SeedAdminEmail)
		}
	}

	return router.RegisterRoutes(router.Deps{
		Logger:         sugar,
		DB:             db,
		Tokens:         tokens,
		Auth:           auth.NewHandler(authSvc, sugar),
		About:          about.NewHandler(about.NewService(aboutRepo), sugar),
		Projects:       project.NewHandler(project.NewService(projectRepo), sugar),
		Services:       services.NewHandler(services.NewItemService(serviceRepo), sugar),
		AllowedOrigins: cfg.AllowedOrigins,
		LoginRateLimit: cfg.LoginRateLimit,
	}), nil
}
