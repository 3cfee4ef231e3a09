package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/daybook/migrations"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "daybook.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func files(sqls map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, body := range sqls {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return m
}

func subFS(t *testing.T, dir string) fs.FS {
	t.Helper()
	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		t.Fatalf("fs.Sub(%s): %v", dir, err)
	}
	return sub
}

func TestEmbeddedSQLiteSchema(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, subFS(t, "sqlite"))

	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	if applied == 0 {
		t.Fatal("no migrations applied to a fresh database")
	}

	current, err := r.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion: %v", err)
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion: %v", err)
	}
	if current != latest || current != 1 {
		t.Errorf("version = %d, latest = %d, want both 1", current, latest)
	}

	rows, err := db.Query("PRAGMA table_info(documents)")
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols[name] = true
	}
	for _, want := range []string{"key", "value", "updated_at"} {
		if !cols[want] {
			t.Errorf("documents table missing column %q (have %v)", want, cols)
		}
	}

	if _, err := db.Exec("INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)", "habits", "[]", "2024-03-10T00:00:00Z"); err != nil {
		t.Errorf("insert into documents: %v", err)
	}

	// a second run against the migrated database is a no-op
	again, err := r.ApplyMigrations(nil)
	if err != nil || again != 0 {
		t.Errorf("second ApplyMigrations = %d, %v; want 0, nil", again, err)
	}
	if err := r.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion: %v", err)
	}
}

func TestEmbeddedPostgresFilesParse(t *testing.T) {
	r := NewRunner(nil, subFS(t, "postgres")).WithDialect(Postgres)
	if r.dialect != Postgres {
		t.Fatalf("dialect = %v, want Postgres", r.dialect)
	}

	ms, err := r.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles: %v", err)
	}
	if len(ms) == 0 || ms[0].Version != 1 || ms[0].Name != "documents" {
		t.Fatalf("postgres migrations = %+v", ms)
	}
	if !strings.Contains(ms[0].SQL, "documents") {
		t.Errorf("001 does not create documents: %q", ms[0].SQL)
	}

	sqliteLatest, err := NewRunner(nil, subFS(t, "sqlite")).GetLatestVersion()
	if err != nil {
		t.Fatal(err)
	}
	if got := ms[len(ms)-1].Version; got != sqliteLatest {
		t.Errorf("postgres latest = %d, sqlite latest = %d", got, sqliteLatest)
	}
}

func TestDialectPlaceholder(t *testing.T) {
	tests := []struct {
		d    Dialect
		want string
	}{
		{SQLite, "?"},
		{Postgres, "$1"},
	}
	for _, tt := range tests {
		if got := tt.d.placeholder(); got != tt.want {
			t.Errorf("Dialect(%d).placeholder() = %q, want %q", tt.d, got, tt.want)
		}
	}
	if NewRunner(nil, nil).dialect != SQLite {
		t.Error("NewRunner should default to SQLite")
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := openDB(t)
	set := files(map[string]string{
		"001_documents.sql": "CREATE TABLE documents (key TEXT PRIMARY KEY, value TEXT NOT NULL);",
	})

	var lines []string
	n, err := NewRunner(db, set).ApplyMigrations(func(s string) { lines = append(lines, s) })
	if err != nil || n != 1 {
		t.Fatalf("first apply = %d, %v", n, err)
	}
	if len(lines) == 0 {
		t.Error("logFn received no progress lines")
	}

	set["002_updated_at.sql"] = &fstest.MapFile{Data: []byte("ALTER TABLE documents ADD COLUMN updated_at TEXT;")}
	r := NewRunner(db, set)
	n, err = r.ApplyMigrations(nil)
	if err != nil || n != 1 {
		t.Fatalf("second apply = %d, %v; want only 002", n, err)
	}
	if v, _ := r.GetCurrentVersion(); v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
	if _, err := db.Exec("INSERT INTO documents (key, value, updated_at) VALUES ('k', 'v', 'now')"); err != nil {
		t.Errorf("002 not applied: %v", err)
	}
}

func TestFailedMigrationRollsBack(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, files(map[string]string{
		"001_ok.sql":     "CREATE TABLE documents (key TEXT);",
		"002_broken.sql": "CREATE TABLE extra (id INTEGER); NOT VALID SQL;",
	}))

	n, err := r.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected an error from the broken migration")
	}
	if n != 1 {
		t.Errorf("applied = %d, want 1", n)
	}
	if v, _ := r.GetCurrentVersion(); v != 1 {
		t.Errorf("version = %d, want 1 after rollback", v)
	}
	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='extra'").Scan(&name)
	if err != sql.ErrNoRows {
		t.Errorf("table from failed migration survived (err=%v)", err)
	}
}

func TestNewerDatabaseRejected(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, subFS(t, "sqlite"))
	if err := r.SetVersion(99); err != nil {
		t.Fatalf("SetVersion: %v", err)
	}
	if err := r.ValidateVersion(); err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("ValidateVersion = %v, want newer-version error", err)
	}
	if _, err := r.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should refuse a newer database")
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"no separator", map[string]string{"001.sql": ""}, "invalid migration filename"},
		{"non numeric", map[string]string{"abc_x.sql": ""}, "invalid version number"},
		{"zero", map[string]string{"000_x.sql": ""}, "at least 1"},
		{"duplicate", map[string]string{"001_a.sql": "", "001_b.sql": ""}, "duplicate migration version 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, files(tt.files)).ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestReadMigrationFilesIgnoresOtherFiles(t *testing.T) {
	ms, err := NewRunner(nil, files(map[string]string{
		"010_c.sql": "",
		"002_b.sql": "",
		"README.md": "notes",
		"001_a.sql": "",
	})).ReadMigrationFiles()
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for _, m := range ms {
		got = append(got, m.Version)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 10 {
		t.Errorf("versions = %v, want [1 2 10]", got)
	}
}
