//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"room-slot-service/cmd/bootstrap"
	"room-slot-service/cmd/bootstrap/components"
	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/infra/db"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/usecase/shared"
	"room-slot-service/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
	redisPort  = nat.Port("6379/tcp")
)

// Containers are shared by every suite in the process; each suite gets its
// own database and Redis key prefix.
var (
	containersOnce sync.Once
	containersErr  error
	pgEndpoint     endpoint
	redisEndpoint  endpoint
)

type endpoint struct {
	Host string
	Port nat.Port
}

func (e endpoint) Addr() string {
	return e.Host + ":" + e.Port.Port()
}

type e2eEnv struct {
	pool      *pgxpool.Pool
	router    *gin.Engine
	cfg       config.Config
	publisher *RecordingPublisher
}

func setupE2EEnvironment(t *testing.T) e2eEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	containersOnce.Do(startContainers)
	require.NoError(t, containersErr, "start containers")

	suiteID := strings.ReplaceAll(uuid.NewString(), "-", "")
	dbConfig := createDatabase(t, "slots_"+suiteID)

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.Slot.TimeZone = "UTC"
	cfg.Redis.Addr = redisEndpoint.Addr()
	cfg.Redis.LockKeyPrefix = "e2e:" + suiteID + ":"

	pool, closePool, err := db.Connect(dbConfig)
	require.NoError(t, err, "connect test database")
	t.Cleanup(closePool)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	require.NoError(t, db.Migrate(ctx, pool), "migrate test database")

	env := e2eEnv{pool: pool, cfg: cfg, publisher: &RecordingPublisher{}}
	app := buildE2EApp(t, env, &env.router)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("stop e2e app", "error", err.Error())
		}
	})
	return env
}

func startContainers() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{string(pgPort)},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			// durability is irrelevant for throwaway data
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					pgUser, pgPassword, host, port.Port())
			}).WithStartupTimeout(time.Minute),
			Labels: map[string]string{"purpose": "room-slot-e2e"},
		},
		Started: true,
	})
	if err != nil {
		containersErr = fmt.Errorf("postgres container: %w", err)
		return
	}
	if pgEndpoint, err = endpointOf(ctx, pg, pgPort); err != nil {
		containersErr = err
		return
	}

	rd, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{string(redisPort)},
			WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(time.Minute),
			Labels:       map[string]string{"purpose": "room-slot-e2e"},
		},
		Started: true,
	})
	if err != nil {
		containersErr = fmt.Errorf("redis container: %w", err)
		return
	}
	redisEndpoint, containersErr = endpointOf(ctx, rd, redisPort)
}

func endpointOf(ctx context.Context, c testcontainers.Container, port nat.Port) (endpoint, error) {
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return endpoint{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return endpoint{}, err
	}
	return endpoint{Host: host, Port: mapped}, nil
}

// createDatabase creates name on the shared server and drops it when the
// suite ends.
func createDatabase(t *testing.T, name string) config.DBConfig {
	t.Helper()

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", pgUser, pgPassword, pgEndpoint.Addr())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection")
	defer admin.Close()

	// the server can refuse CREATE DATABASE while another suite is creating one
	require.Eventually(t, func() bool {
		_, err := admin.Exec(ctx, "CREATE DATABASE "+name)
		return err == nil
	}, 10*time.Second, 500*time.Millisecond, "create database %s", name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop test database", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     pgEndpoint.Host,
		Port:     pgEndpoint.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
}

// buildE2EApp wires the production modules around the test pool. Redis is
// real; the NATS publisher is swapped for a recorder so tests can assert on
// the events the outbox delivered.
func buildE2EApp(t *testing.T, env e2eEnv, router **gin.Engine) *fx.App {
	t.Helper()

	app := fx.New(
		fx.Supply(env.pool, env.cfg),
		fx.Provide(
			bootstrap.NewClock,
			func() shared.Publisher { return env.publisher },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.LockModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		bootstrap.JobsModule,
		fx.Populate(router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start e2e app")
	require.NotNil(t, *router)
	return app
}

// SharedSuite is embedded by every e2e suite.
type SharedSuite struct {
	suite.Suite
	Router    *gin.Engine
	DB        *pgxpool.Pool
	Config    config.Config
	Publisher *RecordingPublisher
}

func (s *SharedSuite) SetupSuite() {
	env := setupE2EEnvironment(s.T())
	s.DB = env.pool
	s.Router = env.router
	s.Config = env.cfg
	s.Publisher = env.publisher
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
	s.Publisher.Reset()
}

// RecordingPublisher keeps every published message in memory.
type RecordingPublisher struct {
	mu   sync.Mutex
	msgs []*outbox.Message
}

func (p *RecordingPublisher) Publish(_ context.Context, msg *outbox.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

// Topics returns the topics published so far, in publish order.
func (p *RecordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.Topic)
	}
	return out
}

func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = nil
}
