package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/blackwell-systems/camusage/internal/hive"
)

// Tree operations

// SaveTree replaces the stored tree with n. The whole write happens in one
// transaction so a failed export never leaves a half-written hive.
func (s *Store) SaveTree(n *hive.Node) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM keys WHERE parent_id IS NULL`); err != nil {
		return wrapQueryErr("failed to clear previous tree", err)
	}

	if err := insertNode(tx, nil, n); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tree: %w", err)
	}
	return nil
}

func insertNode(tx *sql.Tx, parent *int64, n *hive.Node) error {
	var parentArg any
	if parent != nil {
		parentArg = *parent
	}

	res, err := tx.Exec(`INSERT INTO keys (parent_id, name) VALUES (?, ?)`, parentArg, n.Name)
	if err != nil {
		return wrapQueryErr(fmt.Sprintf("failed to insert key %s", n.Name), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get id for key %s: %w", n.Name, err)
	}

	for name, v := range n.Values {
		var err error
		if q, ok := v.(uint64); ok {
			_, err = tx.Exec(`INSERT INTO key_values (key_id, name, kind, qword) VALUES (?, ?, ?, ?)`,
				id, name, kindQWORD, int64(q))
		} else {
			_, err = tx.Exec(`INSERT INTO key_values (key_id, name, kind, raw) VALUES (?, ?, ?, ?)`,
				id, name, kindOther, fmt.Sprint(v))
		}
		if err != nil {
			return fmt.Errorf("failed to insert value %s on key %s: %w", name, n.Name, err)
		}
	}

	names := make([]string, 0, len(n.Keys))
	for k := range n.Keys {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		child := n.Keys[k]
		if child.Name == "" {
			child.Name = k
		}
		if err := insertNode(tx, &id, child); err != nil {
			return err
		}
	}
	return nil
}

// Root opens the root key of the stored tree. Closing the returned key
// closes the store.
func (s *Store) Root() (hive.Key, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM keys WHERE parent_id IS NULL ORDER BY id LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("failed to open root key: %w", ErrNotInitialized)
	}
	if err != nil {
		return nil, wrapQueryErr("failed to open root key", err)
	}
	return &sqlKey{store: s, id: id, root: true}, nil
}

// sqlKey is a hive.Key backed by a row in the keys table.
type sqlKey struct {
	store *Store
	id    int64
	root  bool
}

func (k *sqlKey) SubKeyNames() ([]string, error) {
	rows, err := k.store.db.Query(`SELECT name FROM keys WHERE parent_id = ? ORDER BY name`, k.id)
	if err != nil {
		return nil, wrapQueryErr("failed to list sub-keys", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan sub-key name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sub-keys: %w", err)
	}
	return names, nil
}

func (k *sqlKey) OpenSubKey(name string) (hive.Key, error) {
	var id int64
	err := k.store.db.QueryRow(
		`SELECT id FROM keys WHERE parent_id = ? AND name = ? COLLATE NOCASE`, k.id, name,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("open %q: %w", name, hive.ErrNotExist)
	}
	if err != nil {
		return nil, wrapQueryErr(fmt.Sprintf("open %q", name), err)
	}
	return &sqlKey{store: k.store, id: id}, nil
}

func (k *sqlKey) QWORD(name string) (uint64, error) {
	var kind string
	var q sql.NullInt64
	err := k.store.db.QueryRow(
		`SELECT kind, qword FROM key_values WHERE key_id = ? AND name = ?`, k.id, name,
	).Scan(&kind, &q)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("value %q: %w", name, hive.ErrNotExist)
	}
	if err != nil {
		return 0, wrapQueryErr(fmt.Sprintf("value %q", name), err)
	}
	if kind != kindQWORD || !q.Valid {
		return 0, fmt.Errorf("value %q: %w", name, hive.ErrUnexpectedType)
	}
	return uint64(q.Int64), nil
}

// Close closes the underlying database when called on the root key.
func (k *sqlKey) Close() error {
	if k.root {
		return k.store.Close()
	}
	return nil
}
