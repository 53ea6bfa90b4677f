package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/sh4ner/streamerpulse/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	contactmigrations "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/repositories/migrations"
	contentmigrations "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/repositories/migrations"
	giveawaymigrations "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories/migrations"
	leaderboardmigrations "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories/migrations"
	trackingmigrations "github.com/sh4ner/streamerpulse/app/modules/tracking/infrastructure/repositories/migrations"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := map[string]*migrate.Migrator{
		"leaderboard": newMigrator(db, "leaderboard", leaderboardmigrations.Migrations),
		"giveaway":    newMigrator(db, "giveaway", giveawaymigrations.Migrations),
		"content":     newMigrator(db, "content", contentmigrations.Migrations),
		"contact":     newMigrator(db, "contact", contactmigrations.Migrations),
		"tracking":    newMigrator(db, "tracking", trackingmigrations.Migrations),
	}

	cliApp := &cli.App{
		Name: "bun",
		Commands: []*cli.Command{
			newMultiModuleDBCommand(migrators),
			newRiverCommand(cfg.Postgres.DSN),
		},
	}

	// flag.Parse consumed -config; cli sees the remaining args.
	if err := cliApp.Run(append([]string{os.Args[0]}, flag.Args()...)); err != nil {
		log.Fatal(err)
	}
}

// newMigrator keeps one history table per module so rollbacks stay module-local.
func newMigrator(db *bun.DB, module string, migrations *migrate.Migrations) *migrate.Migrator {
	return migrate.NewMigrator(db, migrations,
		migrate.WithTableName("bun_migrations_"+module),
		migrate.WithLocksTableName("bun_migration_locks_"+module),
	)
}

// sortedModules returns module names in a stable order.
func sortedModules(migrators map[string]*migrate.Migrator) []string {
	names := make([]string, 0, len(migrators))
	for name := range migrators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newMultiModuleDBCommand(migrators map[string]*migrate.Migrator) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, moduleName := range sortedModules(migrators) {
						fmt.Printf("Initializing migrations for module: %s\n", moduleName)
						if err := migrators[moduleName].Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", moduleName, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for _, moduleName := range sortedModules(migrators) {
						migrator := migrators[moduleName]
						if err := migrator.Lock(c.Context); err != nil {
							return err
						}
						group, err := migrator.Migrate(c.Context)
						_ = migrator.Unlock(c.Context)
						if err != nil {
							return fmt.Errorf("migrate %s: %w", moduleName, err)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", moduleName)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", moduleName, group)
						}
					}
					return nil
				},
			},
			{
				Name:      "rollback",
				Usage:     "rollback the last migration group of one module",
				ArgsUsage: "<module>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					migrator, ok := migrators[moduleName]
					if !ok {
						return fmt.Errorf("invalid module name: %q", moduleName)
					}
					group, err := migrator.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Printf("No groups to roll back for module: %s\n", moduleName)
					} else {
						fmt.Printf("Rolled back module: %s from %s\n", moduleName, group)
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					migrator, ok := migrators[moduleName]
					if !ok {
						return fmt.Errorf("invalid module name: %q", moduleName)
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, moduleName := range sortedModules(migrators) {
						ms, err := migrators[moduleName].MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", moduleName)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}

// newRiverCommand manages the River job tables used by the media queue.
func newRiverCommand(dsn string) *cli.Command {
	run := func(ctx context.Context, direction rivermigrate.Direction) error {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		defer pool.Close()

		migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
		if err != nil {
			return err
		}
		opts := &rivermigrate.MigrateOpts{}
		if direction == rivermigrate.DirectionDown {
			opts.MaxSteps = 1
		}
		res, err := migrator.Migrate(ctx, direction, opts)
		if err != nil {
			return err
		}
		if len(res.Versions) == 0 {
			fmt.Println("River schema is up to date")
		}
		for _, v := range res.Versions {
			fmt.Printf("River migration %s: version %d\n", direction, v.Version)
		}
		return nil
	}

	return &cli.Command{
		Name:  "river",
		Usage: "River job queue schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply River migrations",
				Action: func(c *cli.Context) error {
					return run(c.Context, rivermigrate.DirectionUp)
				},
			},
			{
				Name:  "down",
				Usage: "roll back the latest River migration",
				Action: func(c *cli.Context) error {
					return run(c.Context, rivermigrate.DirectionDown)
				},
			},
		},
	}
}
