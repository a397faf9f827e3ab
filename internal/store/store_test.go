package store_test

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/coldwatch/coldwatch/internal/store"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.New(db)
	if err := s.Migrate(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	s := store.New(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := s.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSourcePayloadRoundTrip(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)

	payload := []byte("workbook bytes")
	if err := s.PutSourcePayload("https://example.com/log.xlsx", "abc123", payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, hash, err := s.GetSourcePayload("https://example.com/log.xlsx")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
	if hash != "abc123" {
		t.Errorf("hash = %q, want abc123", hash)
	}
}

func TestPutSourcePayloadReplacesSnapshot(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)

	if err := s.PutSourcePayload("src", "h1", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.PutSourcePayload("src", "h2", []byte("new")); err != nil {
		t.Fatal(err)
	}

	got, hash, err := s.GetSourcePayload("src")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" || hash != "h2" {
		t.Errorf("snapshot = (%q, %q), want latest", got, hash)
	}
}

func TestGetSourcePayloadMissing(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)

	if _, _, err := s.GetSourcePayload("never-fetched"); err == nil {
		t.Error("expected error for a source with no snapshot")
	}
}

func TestSourceFetchedAt(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)

	if err := s.PutSourcePayload("src", "h1", []byte("payload")); err != nil {
		t.Fatal(err)
	}

	fetchedAt, err := s.SourceFetchedAt("src")
	if err != nil {
		t.Fatal(err)
	}
	if fetchedAt.IsZero() {
		t.Error("expected a fetch time for a cached source")
	}

	missing, err := s.SourceFetchedAt("other")
	if err != nil {
		t.Fatal(err)
	}
	if !missing.IsZero() {
		t.Errorf("expected zero time for unknown source, got %v", missing)
	}
}
