package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	contactmigrations "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/repositories/migrations"
	contentmigrations "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/repositories/migrations"
	giveawaymigrations "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories/migrations"
	leaderboardmigrations "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories/migrations"
	trackingmigrations "github.com/sh4ner/streamerpulse/app/modules/tracking/infrastructure/repositories/migrations"
	"github.com/sh4ner/streamerpulse/config"
	"github.com/sh4ner/streamerpulse/integration_tests/containers"
)

// Tables are truncated between tests by Reset.
var Tables = []string{
	"leaderboard_snapshots",
	"giveaway_entries",
	"giveaway_content",
	"news",
	"reviews",
	"schedule_events",
	"clips",
	"contacts",
	"visitors",
	"link_clicks",
	"river_job",
}

// TestEnvironment holds the containers and connections shared by one test package.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *tcnats.NATSContainer
	DB            *bun.DB
	NatsConn      *nats.Conn
	Config        *config.Config
}

// NewTestEnvironment starts Postgres (and NATS when withNATS is set), applies every module
// migration and the River schema.
func NewTestEnvironment(withNATS bool) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel}

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	env.PgContainer = pgContainer
	env.Config = &config.Config{Postgres: config.PostgresConfig{DSN: dsn}}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	env.DB = bun.NewDB(sqldb, pgdialect.New())

	if err := runMigrations(ctx, env.DB); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := runRiverMigrations(ctx, dsn); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run river migrations: %w", err)
	}

	if withNATS {
		natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
		if err != nil {
			env.Cleanup()
			return nil, err
		}
		env.NatsContainer = natsContainer
		env.Config.NATS = config.NATSConfig{URL: natsURL, SubjectPrefix: "test"}

		nc, err := nats.Connect(natsURL, nats.Timeout(10*time.Second))
		if err != nil {
			env.Cleanup()
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		env.NatsConn = nc
	}

	return env, nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	modules := map[string]*migrate.Migrations{
		"leaderboard": leaderboardmigrations.Migrations,
		"giveaway":    giveawaymigrations.Migrations,
		"content":     contentmigrations.Migrations,
		"contact":     contactmigrations.Migrations,
		"tracking":    trackingmigrations.Migrations,
	}
	for name, migrations := range modules {
		migrator := migrate.NewMigrator(db, migrations,
			migrate.WithTableName("bun_migrations_"+name),
			migrate.WithLocksTableName("bun_migration_locks_"+name),
		)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("init %s: %w", name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}
	}
	return nil
}

func runRiverMigrations(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return err
	}
	_, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	return err
}

// Reset truncates every module table.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	for _, table := range Tables {
		if _, err := env.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// Cleanup closes connections and terminates the containers.
func (env *TestEnvironment) Cleanup() {
	if env.NatsConn != nil {
		env.NatsConn.Close()
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate Postgres container: %v", err)
		}
	}
	env.CancelContext()
}
