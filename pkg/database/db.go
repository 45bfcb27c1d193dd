package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Config struct {
	DSN      string
	MaxConns int
	// Timeout bounds the startup ping. Defaults to 5s.
	Timeout time.Duration
	// TimeZone is sent as the session timezone of every pooled connection.
	TimeZone string
}

// Connect opens the Postgres pool shared by every repository and verifies
// connectivity with a ping. The caller owns the handle and must Close it.
func Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	dsn, err := withSessionParams(cfg.DSN, cfg.TimeZone)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 5
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// withSessionParams adds run-time parameters to the DSN so that they hold on
// every connection the pool opens, not only the first one. Both URL and
// key=value DSNs are accepted; an explicit setting in the DSN wins.
func withSessionParams(dsn, timeZone string) (string, error) {
	if timeZone == "" {
		return dsn, nil
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		q := u.Query()
		if q.Get("timezone") == "" {
			q.Set("timezone", timeZone)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	if strings.Contains(dsn, "timezone=") {
		return dsn, nil
	}
	return strings.TrimSpace(dsn + " timezone=" + quoteValue(timeZone)), nil
}

// quoteValue quotes a key=value DSN value, escaping backslashes and quotes.
func quoteValue(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
