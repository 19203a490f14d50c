package db

import "testing"

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(nil, Config{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	if _, err := Open(nil, Config{Driver: DriverSQLite}); err == nil {
		t.Fatalf("expected error without SQLITE_PATH")
	}
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	gdb, err := Open(nil, Config{Driver: DriverSQLite, SQLitePath: "file:dbtest?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := AutoMigrateAll(gdb); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	for _, table := range []string{"users", "questions", "progress", "languages"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{PostgresHost: "h", PostgresPort: "5432", PostgresUser: "u", PostgresPassword: "p", PostgresName: "cq"}
	if got := cfg.postgresDSN(); got != "postgres://u:p@h:5432/cq?sslmode=disable" {
		t.Fatalf("dsn: %s", got)
	}
}
