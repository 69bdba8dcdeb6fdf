package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	_ "github.com/lib/pq"
)

// DatabaseConfiguration holds the Postgres connection settings.
type DatabaseConfiguration struct {
	Host     string `env:"MENTIONER_DB_HOST" envDefault:"localhost"`
	Port     string `env:"MENTIONER_DB_PORT" envDefault:"5432"`
	Database string `env:"MENTIONER_DB_DATABASE"`
	Username string `env:"MENTIONER_DB_USERNAME"`
	Password string `env:"MENTIONER_DB_PASSWORD"`
	Schema   string `env:"MENTIONER_DB_SCHEMA" envDefault:"public"`
	SSLMode  string `env:"MENTIONER_DB_SSLMODE" envDefault:"require"`
}

// NewDatabaseConfiguration reads the configuration from the environment,
// after loading a local .env file if one exists.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	err := LoadEnvFiles()
	if err != nil {
		return nil, err
	}

	config := &DatabaseConfiguration{}
	err = ParseEnv(config)
	if err != nil {
		return nil, err
	}

	if config.Database == "" || config.Username == "" {
		return nil, NewError("database configuration", fmt.Errorf("MENTIONER_DB_DATABASE and MENTIONER_DB_USERNAME must be set"))
	}

	return config, nil
}

// DatabaseConnectionString returns the lib/pq connection URL.
func (c *DatabaseConfiguration) DatabaseConnectionString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   c.Database,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	if c.Schema != "" {
		q.Set("search_path", c.Schema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Database is a named connection pool with its logger.
type Database struct {
	Name     string
	Logger   *slog.Logger
	Instance *sql.DB
}

// NewDatabase opens and pings a connection pool for dbConfig.
func NewDatabase(name string, dbConfig *DatabaseConfiguration, logger *slog.Logger) (*Database, error) {
	if dbConfig == nil {
		return nil, NewError("database configuration validation", fmt.Errorf("database configuration is nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	instance, err := sql.Open("postgres", dbConfig.DatabaseConnectionString())
	if err != nil {
		return nil, NewError("open database", err)
	}
	instance.SetMaxOpenConns(25)
	instance.SetMaxIdleConns(5)
	instance.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = instance.PingContext(ctx)
	if err != nil {
		instance.Close()
		return nil, NewError("ping database", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", dbConfig.Host), slog.String("database", dbConfig.Database))

	return &Database{
		Name:     name,
		Logger:   logger,
		Instance: instance,
	}, nil
}

// Close closes the connection pool.
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}
