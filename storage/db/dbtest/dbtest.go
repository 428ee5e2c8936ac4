// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides synthesis databases for tests.
//
// Tests use an in-memory SQLite database unless -cloud is given, in
// which case each test gets its own scratch database on the Cloud SQL
// instance named by -cloudsql.
package dbtest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"testing"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hmc-dse/ppa/storage/db"
	_ "github.com/hmc-dse/ppa/storage/db/sqlite3"
	"github.com/hmc-dse/ppa/synth"
)

var (
	cloud    = flag.Bool("cloud", false, "run database tests against Cloud SQL instead of in-memory SQLite")
	cloudsql = flag.String("cloudsql", "", "Cloud SQL `instance` for -cloud")
)

// scratchDSN creates an empty MySQL database on the -cloudsql
// instance and arranges for it to be dropped when t finishes.
func scratchDSN(t *testing.T) string {
	if *cloudsql == "" {
		t.Fatal("-cloud requires -cloudsql")
	}
	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		t.Fatal(err)
	}
	name := "ppa_test_" + hex.EncodeToString(suffix[:])
	server := fmt.Sprintf("root:@cloudsql(%s)/", *cloudsql)

	admin, err := sql.Open("mysql", server)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := admin.Exec("CREATE DATABASE `" + name + "`"); err != nil {
		admin.Close()
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec("DROP DATABASE `" + name + "`"); err != nil {
			t.Errorf("dropping %s: %v", name, err)
		}
		admin.Close()
	})
	t.Logf("using database %s", name)
	return server + name
}

// NewDB opens an empty synthesis database that is closed when t
// finishes.
func NewDB(t *testing.T) *db.DB {
	t.Helper()
	driver, dsn := "sqlite3", ":memory:"
	if *cloud {
		driver, dsn = "mysql", scratchDSN(t)
	}
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		t.Fatalf("open %s database: %v", driver, err)
	}
	// Registered after scratchDSN's cleanup, so it runs first.
	t.Cleanup(func() { d.Close() })

	if n, err := d.CountUploads(); err != nil {
		t.Fatal(err)
	} else if n != 0 {
		t.Fatalf("new database has %d uploads, want 0", n)
	}
	return d
}

// Seed stores synths and best as one upload in d and returns its ID.
func Seed(t *testing.T, d *db.DB, synths, best []synth.Record) int64 {
	t.Helper()
	ctx := context.Background()
	u, err := d.NewUpload(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Insert(ctx, db.Synths, synths); err != nil {
		t.Fatalf("seeding %s: %v", db.Synths, err)
	}
	if err := u.Insert(ctx, db.Best, best); err != nil {
		t.Fatalf("seeding %s: %v", db.Best, err)
	}
	return u.ID
}
