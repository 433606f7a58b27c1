package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// timeLayout is a fixed-width UTC format, so lexicographic order of stored
// timestamps matches chronological order and ORDER BY stays exact.
const timeLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// Client wraps the shared database handle. All stores go through it; no
// request touches ambient global state.
type Client struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS subscriptions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL,
	product_id INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions (user_id);

CREATE TABLE IF NOT EXISTS observations (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp        TEXT,
	timezone         TEXT NOT NULL DEFAULT '',
	coordinates      TEXT NOT NULL DEFAULT '',
	satellite_id     TEXT NOT NULL DEFAULT '',
	spectral_indices TEXT NOT NULL DEFAULT '',
	notes            TEXT NOT NULL DEFAULT '',
	product_id       INTEGER,
	value            TEXT NOT NULL DEFAULT '',
	unit             TEXT NOT NULL DEFAULT '',
	confidence       REAL
);
CREATE INDEX IF NOT EXISTS idx_observations_product ON observations (product_id);
CREATE INDEX IF NOT EXISTS idx_observations_timestamp ON observations (timestamp);

CREATE TABLE IF NOT EXISTS api_usage (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	endpoint  TEXT NOT NULL
);
`

// seedProducts is the immutable catalog. Product 5 is the all-access plan.
const seedProducts = `
INSERT OR IGNORE INTO products (id, name, description, price) VALUES
	(1, 'Crop Health Monitoring', 'NDVI-based crop health insights', '$499/mo'),
	(2, 'Wildfire Risk Assessment', 'Thermal anomaly and fuel dryness analysis', '$399/mo'),
	(3, 'Urban Expansion Tracking', 'Built-up area change detection', '$299/mo'),
	(4, 'Deforestation Alert System', 'Forest cover loss alerts', '$199/mo'),
	(5, 'Pro Plan (All Access)', 'Full access to every product', '$999/mo');
`

// New opens the database, creates the schema and seeds the product catalog.
func New(cfg Config) (*Client, error) {
	switch cfg.Dialect {
	case "", "sqlite", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", cfg.Dialect)
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = "file:geoscope.db"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY between concurrent requests.
	sqlDB.SetMaxOpenConns(1)

	client := &Client{db: sqlDB}
	if err := client.init(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return client, nil
}

func (c *Client) init(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, seedProducts); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.db.Close()
}
