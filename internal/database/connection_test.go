package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestConnector(t *testing.T) *Connector {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return NewConnector(&ConnectionConfig{
		Driver:         DriverSQLite,
		DSN:            SQLiteDSN(filepath.Join(t.TempDir(), "test.db")),
		ConnectTimeout: 5 * time.Second,
		Logger:         logger,
	})
}

func TestConnector_Connect(t *testing.T) {
	connector := newTestConnector(t)
	ctx := context.Background()

	db, err := connector.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	defer db.Close()

	if stats := db.Stats(); stats.MaxOpenConnections != 1 {
		t.Errorf("Expected MaxOpenConnections 1, got %d", stats.MaxOpenConnections)
	}

	if err := connector.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() failed: %v", err)
	}
}

func TestConnector_UnsupportedDriver(t *testing.T) {
	connector := NewConnector(&ConnectionConfig{Driver: "postgres", DSN: "whatever"})

	_, err := connector.Connect(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unsupported database driver") {
		t.Errorf("Connect() error = %v, want unsupported driver", err)
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN("db.internal", "3306", "shop", "secret", "shoes", 5*time.Second)

	for _, part := range []string{"shop:secret@tcp(db.internal:3306)/shoes", "parseTime=true", "timeout=5s"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("MySQLDSN() = %q, missing %q", dsn, part)
		}
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := SQLiteDSN("/tmp/shop.db"); got != "file:/tmp/shop.db?_foreign_keys=on&_busy_timeout=5000" {
		t.Errorf("SQLiteDSN() = %q", got)
	}
}
