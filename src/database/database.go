package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/username/parsegbx/src/logger"
	"github.com/username/parsegbx/src/models"
	_ "modernc.org/sqlite"
)

const createTablesStatement = `
	CREATE TABLE IF NOT EXISTS backtest_runs (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS backtest_trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		label TEXT NOT NULL,
		source TEXT NOT NULL,
		ticket TEXT NOT NULL,
		open_time TEXT,
		type TEXT,
		volume REAL,
		asset TEXT,
		open_price REAL,
		sl REAL,
		tp REAL,
		close_time TEXT,
		close_price REAL,
		profit REAL,
		hash_id TEXT NOT NULL,
		FOREIGN KEY(run_id) REFERENCES backtest_runs(id),
		UNIQUE(hash_id)
	);
	`

// addedColumns are columns introduced after the first release, added to
// existing databases on open.
var addedColumns = []struct{ name, ddl string }{
	{"close_price", "ALTER TABLE backtest_trades ADD COLUMN close_price REAL"},
	{"asset", "ALTER TABLE backtest_trades ADD COLUMN asset TEXT"},
}

// TradeStore persists backtest trades in SQLite.
type TradeStore struct {
	db *sql.DB
}

// NewTradeStore opens (creating when needed) the database at path and
// migrates its schema. Use ":memory:" for a private in-memory store.
func NewTradeStore(path string) (*TradeStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		// every new connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	logger.L.Info("Checking database migrations", "databasePath", path)
	if _, err := db.Exec(createTablesStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if err := migrateTradeTable(db); err != nil {
		db.Close()
		return nil, err
	}
	logger.L.Debug("Database tables ensured/created.")
	return &TradeStore{db: db}, nil
}

// Close releases the database handle.
func (s *TradeStore) Close() error {
	return s.db.Close()
}

func migrateTradeTable(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(backtest_trades)")
	if err != nil {
		return fmt.Errorf("error querying table schema for backtest_trades: %w", err)
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			return fmt.Errorf("error scanning column info for backtest_trades: %w", err)
		}
		columnExists[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating over column info for backtest_trades: %w", err)
	}

	for _, c := range addedColumns {
		if columnExists[c.name] {
			continue
		}
		if _, err := db.Exec(c.ddl); err != nil {
			return fmt.Errorf("error adding %s column: %w", c.name, err)
		}
		logger.L.Info("Added column to backtest_trades table", "column", c.name)
	}
	return nil
}

// SaveTrades records a run and inserts its trades in one transaction. Trades
// whose hash_id is already stored are skipped; the number actually inserted
// is returned.
func (s *TradeStore) SaveTrades(ctx context.Context, runID, label string, trades []models.BacktestTrade) (int, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `INSERT INTO backtest_runs (id, label) VALUES (?, ?)`, runID, label); err != nil {
		return 0, fmt.Errorf("error recording run %s: %w", runID, err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO backtest_trades (run_id, label, source, ticket, open_time, type, volume, asset, open_price, sl, tp, close_time, close_price, profit, hash_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, tr := range trades {
		_, err := stmt.ExecContext(ctx, runID, label, tr.Source, tr.Ticket, timeValue(tr.OpenTime), tr.Type, floatValue(tr.Volume), tr.Asset,
			floatValue(tr.OpenPrice), floatValue(tr.SL), floatValue(tr.TP), timeValue(tr.CloseTime), floatValue(tr.ClosePrice), floatValue(tr.Profit), tr.HashId)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
				logger.L.Debug("Skipping duplicate trade", "runID", runID, "hash_id", tr.HashId)
				continue
			}
			return 0, fmt.Errorf("error inserting trade (Ticket: %s): %w", tr.Ticket, err)
		}
		inserted++
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing trades: %w", err)
	}
	logger.L.Info("Stored backtest trades", "runID", runID, "label", label, "inserted", inserted, "skipped", len(trades)-inserted)
	return inserted, nil
}

// ListTrades returns the stored trades of label in insertion order. An empty
// label lists every trade.
func (s *TradeStore) ListTrades(ctx context.Context, label string) ([]models.BacktestTrade, error) {
	query := `SELECT id, source, ticket, open_time, type, volume, asset, open_price, sl, tp, close_time, close_price, profit, hash_id FROM backtest_trades`
	var args []any
	if label != "" {
		query += ` WHERE label = ?`
		args = append(args, label)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying trades for label %q: %w", label, err)
	}
	defer rows.Close()

	trades := []models.BacktestTrade{}
	for rows.Next() {
		var tr models.BacktestTrade
		var openTime, closeTime, typ, asset sql.NullString
		var volume, openPrice, sl, tp, closePrice, profit sql.NullFloat64
		if err := rows.Scan(&tr.ID, &tr.Source, &tr.Ticket, &openTime, &typ, &volume, &asset, &openPrice, &sl, &tp, &closeTime, &closePrice, &profit, &tr.HashId); err != nil {
			return nil, fmt.Errorf("error scanning trade row: %w", err)
		}
		tr.Type, tr.Asset = typ.String, asset.String
		tr.Volume, tr.OpenPrice, tr.SL, tr.TP = floatOf(volume), floatOf(openPrice), floatOf(sl), floatOf(tp)
		tr.ClosePrice, tr.Profit = floatOf(closePrice), floatOf(profit)
		if tr.OpenTime, err = timeOf(openTime); err != nil {
			return nil, err
		}
		if tr.CloseTime, err = timeOf(closeTime); err != nil {
			return nil, err
		}
		trades = append(trades, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over trade rows: %w", err)
	}
	logger.L.Debug("DB fetch complete.", "label", label, "tradeCount", len(trades))
	return trades, nil
}

// NaN and the zero time are stored as NULL.
func floatValue(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func timeValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func floatOf(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func timeOf(v sql.NullString) (time.Time, error) {
	if !v.Valid || v.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing stored timestamp %q: %w", v.String, err)
	}
	return t, nil
}
