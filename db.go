package lnp

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ModDB persists the pack's mod list: the merge order, a checksum of each
// mod's raw files and the outcome of the last merge.
type ModDB struct {
	db *sql.DB
}

func NewModDB(file string) (*ModDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS mod (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, status INTEGER NOT NULL, position INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	return &ModDB{
		db: db,
	}, nil
}

func (db *ModDB) Close() error {
	return db.db.Close()
}

// Mod is one row of the mod store.
type Mod struct {
	Name     string
	CRC      string
	Status   MergeStatus
	Position int
}

// Upsert records a mod found on disk. A new mod lands at the end of the
// merge order as unmerged; an existing mod whose checksum has changed is
// reset to unmerged since its previous merge no longer applies.
func (db *ModDB) Upsert(name, crc string) error {
	var old string
	err := db.db.QueryRow("SELECT crc FROM mod WHERE name = ?", name).Scan(&old)
	switch {
	case err == sql.ErrNoRows:
		var n int
		if err := db.db.QueryRow("SELECT COUNT(*) FROM mod").Scan(&n); err != nil {
			return err
		}
		_, err = db.db.Exec("INSERT INTO mod (name, crc, status, position) VALUES (?, ?, ?, ?)", name, crc, MergeNone, n)
		return err
	case err != nil:
		return err
	case old != crc:
		_, err = db.db.Exec("UPDATE mod SET crc = ?, status = ? WHERE name = ?", crc, MergeNone, name)
		return err
	}
	return nil
}

// List returns every known mod in merge order.
func (db *ModDB) List() ([]Mod, error) {
	rows, err := db.db.Query("SELECT name, crc, status, position FROM mod ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mods []Mod
	for rows.Next() {
		var m Mod
		if err := rows.Scan(&m.Name, &m.CRC, &m.Status, &m.Position); err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}

// Find returns the named mod, or nil if it is not known.
func (db *ModDB) Find(name string) (*Mod, error) {
	var m Mod
	err := db.db.QueryRow("SELECT name, crc, status, position FROM mod WHERE name = ?", name).Scan(&m.Name, &m.CRC, &m.Status, &m.Position)
	switch {
	case err == sql.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &m, nil
}

// SetStatus records the outcome of merging the named mod.
func (db *ModDB) SetStatus(name string, status MergeStatus) error {
	_, err := db.db.Exec("UPDATE mod SET status = ? WHERE name = ?", status, name)
	return err
}

// Remove forgets the named mod.
func (db *ModDB) Remove(name string) error {
	_, err := db.db.Exec("DELETE FROM mod WHERE name = ?", name)
	return err
}

// Reorder rewrites the merge order to match names.
func (db *ModDB) Reorder(names []string) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}

	for i, name := range names {
		if _, err := tx.Exec("UPDATE mod SET position = ? WHERE name = ?", i, name); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
