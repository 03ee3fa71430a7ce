package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"
)

// HistoryStore persists normalized search records in sqlite. One record
// exists per normalized city; its timestamp is refreshed on every
// successful lookup. Records are removed only by ClearHistory, never by
// expiry.
type HistoryStore struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path and ensures the
// searches table exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// sqlite permits a single writer; serializing through one
	// connection avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	s := &HistoryStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *HistoryStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS searches (
			city TEXT PRIMARY KEY,
			searched_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

// Close closes the underlying database handle.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// NormalizeCity reduces a city name to its stored key form.
func NormalizeCity(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RecordSearch upserts the normalized city, refreshing its timestamp.
func (s *HistoryStore) RecordSearch(ctx context.Context, city string) error {
	key := NormalizeCity(city)
	if key == "" {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (city, searched_at) VALUES (?, ?)
		ON CONFLICT(city) DO UPDATE SET searched_at = excluded.searched_at
	`, key, time.Now().UTC())
	return err
}

// RecentHistory returns up to limit distinct cities in stored lowercase
// form, most recently searched first.
func (s *HistoryStore) RecentHistory(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT city FROM searches ORDER BY searched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCities(rows)
}

// ClearHistory deletes every search record.
func (s *HistoryStore) ClearHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM searches`)
	return err
}

// Suggest returns up to 5 cities whose stored key starts with the
// normalized query, ordered ascending by city name, each with only the
// first character uppercased. A blank query yields an empty list.
func (s *HistoryStore) Suggest(ctx context.Context, query string) ([]string, error) {
	prefix := NormalizeCity(query)
	if prefix == "" {
		return []string{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT city FROM searches
		WHERE city LIKE ? ESCAPE '\'
		ORDER BY city ASC LIMIT 5
	`, escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities, err := scanCities(rows)
	if err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, len(cities))
	for _, c := range cities {
		suggestions = append(suggestions, capitalizeFirst(c))
	}
	return suggestions, nil
}

// Maintain runs sqlite housekeeping. It touches no rows.
func (s *HistoryStore) Maintain(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `PRAGMA optimize`)
	return err
}

func scanCities(rows *sql.Rows) ([]string, error) {
	cities := make([]string, 0, 8)
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

// escapeLike escapes LIKE wildcards so user input only ever matches as
// a literal prefix.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// capitalizeFirst uppercases only the first character, leaving the rest
// in stored lowercase form ("los angeles" -> "Los angeles").
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
