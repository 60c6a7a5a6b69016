// Package dpcache caches per-game data packages on disk so reconnects to a
// known room skip the GetDataPackage round trip. Rows are keyed by game and
// checksum; the package JSON is zstd-compressed before it hits sqlite.
//
// The cache is strictly an optimization: every failure path reports a miss
// and the caller falls back to fetching over the network.
package dpcache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/go-archipelago/client/pkg/protocol"
)

const schema = `
CREATE TABLE IF NOT EXISTS datapackage (
	game     TEXT NOT NULL,
	checksum TEXT NOT NULL,
	blob     BLOB NOT NULL,
	PRIMARY KEY (game, checksum)
);`

type Cache struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// DefaultPath is the cache database location under the user cache dir.
func DefaultPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "go-archipelago")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "datapackage.db"), nil
}

// Open opens or creates the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dpcache: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("dpcache: schema: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db, enc: enc, dec: dec}, nil
}

// Load returns the cached package for game if its checksum matches.
func (c *Cache) Load(game, checksum string) (*protocol.GameData, bool) {
	var blob []byte
	err := c.db.QueryRow(
		`SELECT blob FROM datapackage WHERE game = ? AND checksum = ?`,
		game, checksum,
	).Scan(&blob)
	if err != nil {
		return nil, false
	}
	raw, err := c.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, false
	}
	var gd protocol.GameData
	if json.Unmarshal(raw, &gd) != nil {
		return nil, false
	}
	return &gd, true
}

// Store upserts the package for game, replacing stale checksums.
func (c *Cache) Store(game string, gd protocol.GameData) error {
	raw, err := json.Marshal(gd)
	if err != nil {
		return fmt.Errorf("dpcache: marshal %s: %w", game, err)
	}
	blob := c.enc.EncodeAll(raw, nil)
	// One row per game; a new checksum supersedes the old package.
	if _, err := c.db.Exec(`DELETE FROM datapackage WHERE game = ?`, game); err != nil {
		return fmt.Errorf("dpcache: evict %s: %w", game, err)
	}
	if _, err := c.db.Exec(
		`INSERT INTO datapackage (game, checksum, blob) VALUES (?, ?, ?)`,
		game, gd.Checksum, blob,
	); err != nil {
		return fmt.Errorf("dpcache: store %s: %w", game, err)
	}
	return nil
}

// Close releases the database and codecs.
func (c *Cache) Close() error {
	c.enc.Close()
	c.dec.Close()
	return c.db.Close()
}
