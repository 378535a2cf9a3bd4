package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// ConnectionConfig holds database connection configuration
type ConnectionConfig struct {
	Driver         string
	DSN            string
	ConnectTimeout time.Duration
	Logger         *logrus.Logger
}

// DefaultConnectionConfig returns a default configuration for a local SQLite file
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Driver:         DriverSQLite,
		DSN:            SQLiteDSN("./data/shoeshop.db"),
		ConnectTimeout: 5 * time.Second,
		Logger:         logrus.New(),
	}
}

// MySQLDSN builds a MySQL data source name. Times are parsed into time.Time in UTC.
func MySQLDSN(host, port, user, password, dbName string, timeout time.Duration) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Timeout = timeout
	return cfg.FormatDSN()
}

// SQLiteDSN builds a SQLite data source name with foreign keys enabled
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

// Connector opens one database connection per handler invocation.
// There is no pooling across invocations: callers close what they open.
type Connector struct {
	config *ConnectionConfig
}

// NewConnector creates a new connector
func NewConnector(config *ConnectionConfig) *Connector {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &Connector{config: config}
}

// Driver returns the configured driver name
func (c *Connector) Driver() string {
	return c.config.Driver
}

// Connect opens a single-connection handle and verifies it with a ping
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	switch c.config.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", c.config.Driver)
	}

	db, err := sql.Open(c.config.Driver, c.config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx := ctx
	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	c.config.Logger.WithField("driver", c.config.Driver).Debug("Database connection established")
	return db, nil
}

// HealthCheck opens a connection, runs a trivial query and closes it again
func (c *Connector) HealthCheck(ctx context.Context) error {
	db, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}

	return nil
}
