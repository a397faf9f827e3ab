package store

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"time"
)

// Store persists the last fetched workbook per source so an offline run can
// serve the previous snapshot. It is a cache of raw bytes only: normalized
// readings are always recomputed from the payload.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// PutSourcePayload stores the gzip-compressed workbook bytes for a source,
// replacing any previous snapshot.
func (s *Store) PutSourcePayload(source, hash string, payload []byte) error {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}

	_, err := s.db.Exec(`
		INSERT INTO source_cache (source, payload_hash, payload_compressed, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			payload_hash = excluded.payload_hash,
			payload_compressed = excluded.payload_compressed,
			fetched_at = excluded.fetched_at
	`, source, hash, buf.Bytes(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert source cache: %w", err)
	}
	return nil
}

// GetSourcePayload retrieves and decompresses the last stored workbook for
// a source. Returns an error when no snapshot exists.
func (s *Store) GetSourcePayload(source string) ([]byte, string, error) {
	var compressed []byte
	var hash string
	err := s.db.QueryRow(`
		SELECT payload_compressed, payload_hash FROM source_cache WHERE source = ?
	`, source).Scan(&compressed, &hash)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("no cached payload for %s", source)
	}
	if err != nil {
		return nil, "", err
	}

	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, "", fmt.Errorf("create gzip reader: %w", err)
	}
	defer gz.Close()

	payload, err := io.ReadAll(gz)
	if err != nil {
		return nil, "", fmt.Errorf("decompress payload: %w", err)
	}
	return payload, hash, nil
}

// SourceFetchedAt reports when the cached snapshot for a source was taken.
func (s *Store) SourceFetchedAt(source string) (time.Time, error) {
	var fetchedAt time.Time
	err := s.db.QueryRow(`SELECT fetched_at FROM source_cache WHERE source = ?`, source).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	return fetchedAt, err
}
