package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"crossmatch/internal/hashutil"
	"crossmatch/internal/markets"
)

const (
	defaultPath = "data/crossmatch.db"
)

// Store wraps a SQLite DB connection.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the SQLite database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTables ensures the markets and opportunities tables exist.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, stmt := range []string{marketsSchemaSQL, opportunitiesSchemaSQL} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DropTables removes all tables.
func (s *Store) DropTables(ctx context.Context) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS markets;`,
		`DROP TABLE IF EXISTS opportunities;`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ClearTables truncates all tables.
func (s *Store) ClearTables(ctx context.Context) error {
	for _, stmt := range []string{
		`DELETE FROM markets;`,
		`DELETE FROM opportunities;`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Migrate drops any legacy per-venue tables and creates the current schema.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`DROP TABLE IF EXISTS polymarket_markets;`,
		`DROP TABLE IF EXISTS kalshi_markets;`,
		`DROP TABLE IF EXISTS arb_opportunities;`,
		marketsSchemaSQL,
		opportunitiesSchemaSQL,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

const marketsSchemaSQL = `
CREATE TABLE IF NOT EXISTS markets (
	platform TEXT NOT NULL,
	market_id TEXT NOT NULL,
	title TEXT,
	question TEXT,
	yes_price REAL,
	yes_bid REAL,
	yes_ask REAL,
	volume REAL,
	liquidity REAL,
	end_date TEXT,
	url TEXT,
	text_hash TEXT,
	last_seen_at TEXT,
	raw_json TEXT,
	PRIMARY KEY (platform, market_id)
);
CREATE INDEX IF NOT EXISTS markets_platform_idx ON markets(platform);
`

// UpsertMarkets inserts or refreshes one batch of markets in a single
// transaction.
func (s *Store) UpsertMarkets(ctx context.Context, ms []markets.Market) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}
	if len(ms) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, marketUpsertSQL)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i := range ms {
		if err := s.execMarketUpsert(ctx, stmt, ms[i], now); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

const marketUpsertSQL = `
INSERT INTO markets (
	platform, market_id, title, question, yes_price, yes_bid, yes_ask,
	volume, liquidity, end_date, url, text_hash, last_seen_at, raw_json
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(platform, market_id) DO UPDATE SET
	title=excluded.title,
	question=excluded.question,
	yes_price=excluded.yes_price,
	yes_bid=excluded.yes_bid,
	yes_ask=excluded.yes_ask,
	volume=excluded.volume,
	liquidity=excluded.liquidity,
	end_date=excluded.end_date,
	url=excluded.url,
	text_hash=excluded.text_hash,
	last_seen_at=excluded.last_seen_at,
	raw_json=excluded.raw_json;
`

func (s *Store) execMarketUpsert(ctx context.Context, stmt *sql.Stmt, m markets.Market, ts string) error {
	rawJSON, _ := json.Marshal(m)
	textHash := hashutil.HashStrings(m.Title, m.Question)

	var yesBid, yesAsk float64
	if m.Orderbook != nil {
		yesBid = m.Orderbook.YesBid
		yesAsk = m.Orderbook.YesAsk
	}

	var endDate string
	if m.EndDate != nil {
		endDate = m.EndDate.UTC().Format(time.RFC3339Nano)
	}

	_, err := stmt.ExecContext(
		ctx,
		string(m.Platform),
		m.MarketID,
		m.Title,
		m.Question,
		m.YesPrice,
		yesBid,
		yesAsk,
		m.Volume,
		m.Liquidity,
		endDate,
		m.URL,
		textHash,
		ts,
		string(rawJSON),
	)
	return err
}
