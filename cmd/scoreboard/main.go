package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Black-And-White-Club/scoreboard/app"
	"github.com/Black-And-White-Club/scoreboard/config"
	"github.com/Black-And-White-Club/scoreboard/db/bundb"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "scoreboard",
		Usage: "versus scoreboard service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: serve,
			},
			newDBCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			application.Logger.Error("Error during shutdown", "error", err)
		}
	}()

	application.Logger.Info("Scoreboard started", "port", cfg.HTTP.Port)
	if err := application.Run(ctx); err != nil {
		return err
	}
	application.Logger.Info("Scoreboard shut down gracefully")
	return nil
}

// withMigrator opens the database named by the config flag and hands a
// migrator to fn.
func withMigrator(c *cli.Context, fn func(ctx context.Context, m *migrate.Migrator) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := bundb.Open(c.Context, cfg.Postgres)
	if err != nil {
		return err
	}
	defer func(db *bun.DB) { _ = db.Close() }(db)

	return fn(c.Context, bundb.NewMigrator(db))
}

func newDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(ctx context.Context, m *migrate.Migrator) error {
						return m.Init(ctx)
					})
				},
			},
			{
				Name:    "up",
				Aliases: []string{"migrate"},
				Usage:   "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(ctx context.Context, m *migrate.Migrator) error {
						if err := m.Init(ctx); err != nil {
							return err
						}
						if err := m.Lock(ctx); err != nil {
							return err
						}
						defer m.Unlock(ctx) //nolint:errcheck

						group, err := m.Migrate(ctx)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Println("there are no new migrations to run (database is up to date)")
							return nil
						}
						fmt.Printf("migrated to %s\n", group)
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(ctx context.Context, m *migrate.Migrator) error {
						if err := m.Lock(ctx); err != nil {
							return err
						}
						defer m.Unlock(ctx) //nolint:errcheck

						group, err := m.Rollback(ctx)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Println("there are no groups to roll back")
							return nil
						}
						fmt.Printf("rolled back %s\n", group)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(ctx context.Context, m *migrate.Migrator) error {
						ms, err := m.MigrationsWithStatus(ctx)
						if err != nil {
							return err
						}
						fmt.Printf("migrations: %s\n", ms)
						fmt.Printf("unapplied migrations: %s\n", ms.Unapplied())
						fmt.Printf("last migration group: %s\n", ms.LastGroup())
						return nil
					})
				},
			},
			{
				Name:  "create_go",
				Usage: "create Go migration",
				Action: func(c *cli.Context) error {
					name := strings.Join(c.Args().Slice(), "_")
					if name == "" {
						return fmt.Errorf("migration name is required")
					}
					return withMigrator(c, func(ctx context.Context, m *migrate.Migrator) error {
						mf, err := m.CreateGoMigration(ctx, name)
						if err != nil {
							return err
						}
						fmt.Printf("created migration %s (%s)\n", mf.Name, mf.Path)
						return nil
					})
				},
			},
		},
	}
}
