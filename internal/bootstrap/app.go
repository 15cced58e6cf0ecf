package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"jobapply-backend/internal/accounts"
	"jobapply-backend/internal/mailer"
	"jobapply-backend/internal/resumetypes"
	"jobapply-backend/internal/shared/config"
	"jobapply-backend/internal/shared/server"
	"jobapply-backend/internal/shared/storage/db"
	"jobapply-backend/internal/shared/storage/object"
	localstore "jobapply-backend/internal/shared/storage/object/local"
	s3store "jobapply-backend/internal/shared/storage/object/s3"
	"jobapply-backend/internal/submissions"
	"jobapply-backend/internal/web"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store

	ResumeTypesRepo resumetypes.Repo
	SubmissionsRepo submissions.Repo
	AccountsRepo    accounts.Repo

	Catalog     *resumetypes.Service
	Intake      *submissions.Service
	Accounts    *accounts.Service
	Sessions    *accounts.Broadcaster
	Dispatcher  *mailer.Dispatcher
	MailSender  mailer.Sender
	GoogleAuth  *accounts.GoogleService
	WebHandler  *web.Handler
	unsubscribe func()
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Sessions: accounts.NewBroadcaster(),
	}

	if sqlDB != nil {
		app.ResumeTypesRepo = &resumetypes.PGRepo{DB: sqlDB}
		app.SubmissionsRepo = &submissions.PGRepo{DB: sqlDB}
		app.AccountsRepo = &accounts.PGRepo{DB: sqlDB}
	} else {
		app.ResumeTypesRepo = resumetypes.NewMemoryRepo()
		app.SubmissionsRepo = submissions.NewMemoryRepo()
		app.AccountsRepo = accounts.NewMemoryRepo()
	}

	app.Catalog = resumetypes.NewService(app.ResumeTypesRepo)

	app.MailSender = mailer.NewSMTPSender(cfg)
	app.Dispatcher = mailer.NewDispatcher(
		app.Catalog,
		mailer.NewFetcher(cfg.FetchTimeout),
		app.MailSender,
		store,
	)
	app.Intake = submissions.NewService(app.SubmissionsRepo, app.Dispatcher)

	app.Accounts = accounts.NewService(app.AccountsRepo, app.Sessions)
	app.Accounts.Mail = app.MailSender
	app.Accounts.RequireConfirmation = cfg.RequireConfirmation
	app.Accounts.ResetBaseURL = cfg.ResetBaseURL
	app.GoogleAuth = accounts.NewGoogleService(cfg, app.Accounts)

	app.unsubscribe = app.Sessions.Subscribe(logSessionEvent)

	if isDevLike(cfg.Env) {
		seedAdminAccount(ctx, app.Accounts)
	}

	app.WebHandler, err = web.NewHandler(app.Catalog)
	if err != nil {
		return nil, fmt.Errorf("build web handler: %w", err)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		ResumeTypesHandler: resumetypes.NewHandler(app.Catalog),
		SubmissionsHandler: submissions.NewHandler(app.Intake),
		AccountsHandler:    accounts.NewHandler(app.Accounts),
		GoogleAuth:         app.GoogleAuth,
		WebHandler:         app.WebHandler,
	})

	return app, nil
}

// Close releases process-lifetime resources.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func logSessionEvent(e accounts.Event) {
	log.Printf("session %s: %s", e.Kind, e.Email)
}

// seedAdminAccount creates a dev login from ADMIN_EMAIL/ADMIN_PASSWORD so the
// submissions view is reachable without a signup flow. Existing accounts are
// left alone.
func seedAdminAccount(ctx context.Context, svc *accounts.Service) {
	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	wasGated := svc.RequireConfirmation
	svc.RequireConfirmation = false
	_, err := svc.SignUp(ctx, email, password, "Admin")
	svc.RequireConfirmation = wasGated

	if err != nil && !errors.Is(err, accounts.ErrEmailTaken) {
		log.Printf("bootstrap: seed admin account: %v", err)
	}
}
