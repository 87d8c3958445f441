package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS comparison_cache (
    cache_key            TEXT PRIMARY KEY,
    payload              BLOB NOT NULL,
    size_bytes           INTEGER NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comparison_cache_created ON comparison_cache(created_at);
`
