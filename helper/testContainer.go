package helper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbName = "database"
	dbUser = "user"
	dbPwd  = "password"
)

// MustStartPostgresContainer starts a Postgres container and returns its
// teardown function and mapped port.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	dbContainer, err := postgres.Run(
		ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("error starting postgres container: %w", err)
	}

	port, err := dbContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, "", fmt.Errorf("error getting mapped port: %w", err)
	}

	return dbContainer.Terminate, port.Port(), nil
}

// NewTestDatabase connects to a test database and panics on failure.
func NewTestDatabase(dbConfig *DatabaseConfiguration) *Database {
	db, err := NewDatabase("test", dbConfig, NewLogger(os.Stdout, slog.LevelWarn))
	if err != nil {
		panic(fmt.Sprintf("error connecting to test database: %v", err))
	}
	return db
}

// Setenver is implemented by *testing.T and *testing.B.
type Setenver interface {
	Setenv(key, value string)
}

// SetTestDatabaseConfigEnvs points the database environment at a test container.
func SetTestDatabaseConfigEnvs(t Setenver, port string) {
	t.Setenv("MENTIONER_DB_HOST", "localhost")
	t.Setenv("MENTIONER_DB_PORT", port)
	t.Setenv("MENTIONER_DB_DATABASE", dbName)
	t.Setenv("MENTIONER_DB_USERNAME", dbUser)
	t.Setenv("MENTIONER_DB_PASSWORD", dbPwd)
	t.Setenv("MENTIONER_DB_SCHEMA", "public")
	t.Setenv("MENTIONER_DB_SSLMODE", "disable")
}
