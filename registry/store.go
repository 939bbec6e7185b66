package registry

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS channels (
    hash      INTEGER PRIMARY KEY,
    name      TEXT NOT NULL UNIQUE,
    address   TEXT NOT NULL,
    port      INTEGER NOT NULL,
    transport TEXT NOT NULL
);
`

// Store persists channel registrations in a SQLite database, keyed by the
// xxHash64 of the channel name so lookups stay O(1) even with a large
// channel count.
type Store struct {
	db *sqlx.DB
}

// OpenStore opens (creating if necessary) the SQLite database at path and
// ensures the channels table exists. Use ":memory:" for an ephemeral store
// in tests.
func OpenStore(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("registry: open store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("registry: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type channelRow struct {
	Hash      int64  `db:"hash"`
	Name      string `db:"name"`
	Address   string `db:"address"`
	Port      int64  `db:"port"`
	Transport string `db:"transport"`
}

// Insert adds a new channel row keyed by hash. Returns an error (including
// a SQLite UNIQUE-constraint error) if hash or name already exist.
func (s *Store) Insert(hash uint64, ch Channel) error {
	_, err := s.db.Exec(
		`INSERT INTO channels (hash, name, address, port, transport) VALUES (?, ?, ?, ?, ?)`,
		int64(hash), ch.Name, ch.Address, ch.Port, ch.Transport,
	)
	if err != nil {
		return fmt.Errorf("registry: insert channel %q: %w", ch.Name, err)
	}

	return nil
}

// Delete removes the channel registered under name. Not an error if no
// such channel exists.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM channels WHERE name = ?`, name); err != nil {
		return fmt.Errorf("registry: delete channel %q: %w", name, err)
	}

	return nil
}

// Lookup resolves name to its registered Channel. ok is false if no such
// channel is registered.
func (s *Store) Lookup(name string) (Channel, bool) {
	var row channelRow
	err := s.db.Get(&row, `SELECT hash, name, address, port, transport FROM channels WHERE name = ?`, name)
	if err != nil {
		return Channel{}, false
	}

	return Channel{Name: row.Name, Address: row.Address, Port: row.Port, Transport: row.Transport}, true
}

// HashUsed reports whether hash is already assigned to some channel name,
// and if so, which one.
func (s *Store) HashUsed(hash uint64) (string, bool) {
	var name string
	err := s.db.Get(&name, `SELECT name FROM channels WHERE hash = ?`, int64(hash))
	if err != nil {
		return "", false
	}

	return name, true
}

// List returns every registered channel name, ordered by ascending hash
// value (not by insertion order).
func (s *Store) List() ([]string, error) {
	var names []string
	if err := s.db.Select(&names, `SELECT name FROM channels ORDER BY hash`); err != nil {
		return nil, fmt.Errorf("registry: list channels: %w", err)
	}

	return names, nil
}
