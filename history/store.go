// Package history persists the closed-trade log. The whole log is loaded at
// process start and rewritten after every resolution; the store is a plain
// replace-all file, not a transactional ledger.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/evdnx/gosb/types"
)

type Store interface {
	Load() ([]types.TradeRecord, error)
	Save(records []types.TradeRecord) error
	Close() error
}

// SQLite keeps the closed trades in a single table ordered by resolution
// time.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	schema := `
	CREATE TABLE IF NOT EXISTS closed_trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		amount REAL NOT NULL,
		entry_price REAL NOT NULL,
		timestamp TEXT NOT NULL,
		result TEXT NOT NULL,
		profit REAL NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load() ([]types.TradeRecord, error) {
	rows, err := s.db.Query(`SELECT symbol, direction, amount, entry_price, timestamp, result, profit
		FROM closed_trades ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []types.TradeRecord
	for rows.Next() {
		var r types.TradeRecord
		var ts string
		if err := rows.Scan(&r.Symbol, &r.Direction, &r.Amount, &r.EntryPrice, &ts, &r.Result, &r.Profit); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		r.Timestamp = t
		out = append(out, r)
	}
	return out, rows.Err()
}

// Save rewrites the whole log inside one transaction so a crash mid-write
// cannot leave a truncated history behind.
func (s *SQLite) Save(records []types.TradeRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM closed_trades`); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO closed_trades
		(symbol, direction, amount, entry_price, timestamp, result, profit)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range records {
		if _, err := stmt.Exec(r.Symbol, string(r.Direction), r.Amount, r.EntryPrice,
			r.Timestamp.Format(time.RFC3339), string(r.Result), r.Profit); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error { return s.db.Close() }
