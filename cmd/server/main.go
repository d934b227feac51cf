package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/vinyasa/studio/auth"
	"github.com/vinyasa/studio/config"
	"github.com/vinyasa/studio/httpapi"
	"github.com/vinyasa/studio/roster"
	"github.com/vinyasa/studio/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := auth.DefaultLogger()
	ctx := context.Background()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.GetDSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	persistence.RegisterModel((*store.User)(nil))
	persistence.RegisterModel((*store.Teacher)(nil))
	persistence.RegisterModel((*store.Session)(nil))
	persistence.RegisterModel((*store.SessionUser)(nil))

	client, err := persistence.New(cfg.Database, sqldb, sqlitedialect.New())
	if err != nil {
		return fmt.Errorf("persistence client: %w", err)
	}
	client.SetLogger(logger)

	migrationsFS, err := fs.Sub(store.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	db := client.DB()
	defer db.Close()

	repo := store.NewManager(db)
	repo.MustValidate()

	provider := store.NewUserProvider(repo.Users()).WithLogger(logger)
	auther := auth.NewAuthenticator(provider, cfg.Auth).WithLogger(logger)
	rosterMgr := roster.NewManager(repo.Sessions(), repo.Users(), repo, logger)

	app := fiber.New(fiber.Config{
		AppName:      "studio",
		ErrorHandler: httpapi.ErrorHandler(logger),
	})

	httpapi.Register(app, httpapi.Deps{
		Auther:   auther,
		Tokens:   auther.TokenService(),
		Users:    repo.Users(),
		Sessions: repo.Sessions(),
		Teachers: repo.Teachers(),
		Roster:   rosterMgr,
		Config:   cfg.Auth,
		Logger:   logger,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown: %s", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("listening on %s", addr)

	return app.Listen(addr)
}
