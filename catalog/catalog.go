/*
Package catalog implements the sqlite database used to track every image
extracted from a style file. Identical pixel data is stored once, keyed
by a hash of the raw RGBA bytes; asset rows reference the shared image.
*/
package catalog

import (
	"database/sql"
	"fmt"
	"image"

	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"
)

// Asset kinds.
const (
	KindTile   = "tile"
	KindSprite = "sprite"
	KindDelta  = "delta"
)

// DB is the asset catalog.
type DB struct {
	db *sql.DB
}

// New opens, creating if necessary, the catalog at file.
func New(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, hash TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, kind STRING NOT NULL, idx INTEGER NOT NULL, frame INTEGER, file STRING NOT NULL, image_id INTEGER NOT NULL, FOREIGN KEY(image_id) REFERENCES image(id), UNIQUE(kind, idx, frame))"); err != nil {
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the catalog.
func (db *DB) Close() error {
	return db.db.Close()
}

// Add records one extracted image. frame is the delta frame number, or
// negative for tiles and base sprites.
func (db *DB) Add(kind string, index, frame int, file string, m *image.RGBA) error {
	id, err := db.addImage(m)
	if err != nil {
		return err
	}

	var f sql.NullInt64
	if frame >= 0 {
		f.Int64 = int64(frame)
		f.Valid = true
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO asset (kind, idx, frame, file, image_id) VALUES (?, ?, ?, ?, ?)", kind, index, f, file, id); err != nil {
		return err
	}
	return nil
}

func (db *DB) addImage(m *image.RGBA) (int64, error) {
	hash := fmt.Sprintf("%016X", xxhash.Sum64(m.Pix))

	// Concurrent writers can race on the same hash; the insert is a no-op
	// for the loser and the select returns the winner's row.
	if _, err := db.db.Exec("INSERT OR IGNORE INTO image (hash, width, height) VALUES (?, ?, ?)", hash, m.Rect.Dx(), m.Rect.Dy()); err != nil {
		return 0, err
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM image WHERE hash = ?", hash).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Images returns the number of distinct images stored.
func (db *DB) Images() (int, error) {
	var n int
	err := db.db.QueryRow("SELECT COUNT(*) FROM image").Scan(&n)
	return n, err
}

// Assets returns the number of asset records.
func (db *DB) Assets() (int, error) {
	var n int
	err := db.db.QueryRow("SELECT COUNT(*) FROM asset").Scan(&n)
	return n, err
}
