package store

const schema = `
CREATE TABLE IF NOT EXISTS keys (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    parent_id INTEGER,
    name TEXT NOT NULL,
    FOREIGN KEY (parent_id) REFERENCES keys(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS key_values (
    key_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    qword INTEGER,
    raw TEXT,
    PRIMARY KEY (key_id, name),
    FOREIGN KEY (key_id) REFERENCES keys(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_keys_parent_name ON keys(parent_id, name COLLATE NOCASE);
`

// Value kinds stored in key_values.kind.
const (
	kindQWORD = "qword"
	kindOther = "other"
)
