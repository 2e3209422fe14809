package testutil

import (
	"testing"
)

func TestNewTestDBRunsMigrations(t *testing.T) {
	db := NewTestDB(t)

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", "alert_instances").Scan(&name)
	if err != nil {
		t.Fatalf("table alert_instances not found: %v", err)
	}
}

func TestNewTestDBIsolated(t *testing.T) {
	first := NewTestDB(t)
	second := NewTestDB(t)

	if _, err := first.Exec(`INSERT INTO alert_instances (id, kind, created_at) VALUES ('a', 'info', '2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("inserting: %v", err)
	}

	var count int
	if err := second.QueryRow(`SELECT COUNT(*) FROM alert_instances`).Scan(&count); err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != 0 {
		t.Errorf("expected separate databases, second has %d rows", count)
	}
}
