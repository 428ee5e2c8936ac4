// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores synthesis results in a SQL database.
//
// Each batch of results written together forms an upload. An upload
// holds every synthesis run in its Synths table and the best
// achievable run of each design point in its Best table.
package db

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"github.com/hmc-dse/ppa/synth"
	"golang.org/x/net/context"
)

// A Table names one of the record tables.
type Table string

const (
	Synths Table = "Synths"
	Best   Table = "Best"
)

var tables = []Table{Synths, Best}

func (t Table) valid() bool {
	for _, t2 := range tables {
		if t == t2 {
			return true
		}
	}
	return false
}

// DB is a high-level interface to a database of synthesis results.
// It's safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertUpload *sql.Stmt
	lastUpload   *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing the
// driver name and the record tables.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
{{range .Tables}}
CREATE TABLE IF NOT EXISTS {{.}} (
	UploadID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	Module VARCHAR(255),
	Tech VARCHAR(255),
	Width INTEGER,
	Freq INTEGER,
	Delay DOUBLE,
	Area DOUBLE,
	LPower DOUBLE,
	DEnergy DOUBLE,
	PRIMARY KEY (UploadID, RecordID),
{{if not $.sqlite3}}
	Index (Module(100), Tech(100), Width),
{{end}}
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if $.sqlite3}}
CREATE INDEX IF NOT EXISTS {{.}}DesignPoint ON {{.}}(Module, Tech, Width);
{{end}}
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]interface{}{driverName: true, "Tables": tables}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	q := "INSERT INTO Uploads() VALUES ()"
	if driverName == "sqlite3" {
		q = "INSERT INTO Uploads DEFAULT VALUES"
	}
	db.insertUpload, err = db.sql.Prepare(q)
	if err != nil {
		return err
	}
	db.lastUpload, err = db.sql.Prepare("SELECT MAX(UploadID) FROM Uploads")
	if err != nil {
		return err
	}
	return nil
}

// An Upload is a batch of records written together.
type Upload struct {
	// ID identifies the upload to Records.
	ID int64

	// recordid is the index of the next record to insert in each
	// table.
	recordid map[Table]int64
	// db is the underlying database that this upload is going to.
	db *DB
}

// NewUpload returns an upload for storing new records.
func (db *DB) NewUpload(ctx context.Context) (*Upload, error) {
	res, err := db.insertUpload.ExecContext(ctx)
	if err != nil {
		return nil, err
	}
	i, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Upload{ID: i, recordid: make(map[Table]int64), db: db}, nil
}

// Insert appends recs to table t of the upload in a single
// transaction.
func (u *Upload) Insert(ctx context.Context, t Table, recs []synth.Record) (err error) {
	if !t.valid() {
		return fmt.Errorf("unknown table %q", t)
	}
	if len(recs) == 0 {
		return nil
	}
	tx, err := u.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+string(t)+"(UploadID, RecordID, Module, Tech, Width, Freq, Delay, Area, LPower, DEnergy) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	id := u.recordid[t]
	for _, r := range recs {
		if _, err = stmt.ExecContext(ctx, u.ID, id, r.Module, r.Tech, r.Width, r.Freq, r.Delay, r.Area, r.LPower, r.DEnergy); err != nil {
			return err
		}
		id++
	}
	u.recordid[t] = id
	return nil
}

// LastUpload returns the ID of the most recent upload, or 0 if there
// are none.
func (db *DB) LastUpload(ctx context.Context) (int64, error) {
	var id sql.NullInt64
	if err := db.lastUpload.QueryRowContext(ctx).Scan(&id); err != nil {
		return 0, err
	}
	return id.Int64, nil
}

// Records returns the records of table t in upload, in insertion
// order.
func (db *DB) Records(ctx context.Context, t Table, upload int64) ([]synth.Record, error) {
	if !t.valid() {
		return nil, fmt.Errorf("unknown table %q", t)
	}
	rows, err := db.sql.QueryContext(ctx, "SELECT Module, Tech, Width, Freq, Delay, Area, LPower, DEnergy FROM "+string(t)+" WHERE UploadID = ? ORDER BY RecordID", upload)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []synth.Record
	for rows.Next() {
		var r synth.Record
		if err := rows.Scan(&r.Module, &r.Tech, &r.Width, &r.Freq, &r.Delay, &r.Area, &r.LPower, &r.DEnergy); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// CountUploads returns the number of uploads in the database.
func (db *DB) CountUploads() (int, error) {
	var uploads int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Uploads").Scan(&uploads)
	return uploads, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertUpload.Close(); err != nil {
		return err
	}
	if err := db.lastUpload.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
