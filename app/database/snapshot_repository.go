package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BigPhill11/market-brief/app/headline"
)

var _ SnapshotRepository = (*SQLSnapshotRepository)(nil)

// SQLSnapshotRepository persists pipeline snapshots in SQLite. Headlines
// are stored as a JSON payload since they are only ever read back whole.
type SQLSnapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) *SQLSnapshotRepository {
	return &SQLSnapshotRepository{db: db}
}

func (r *SQLSnapshotRepository) SaveSnapshot(query, provider string, fetchedAt time.Time, headlines []headline.ProcessedHeadline) error {
	payload, err := json.Marshal(headlines)
	if err != nil {
		return fmt.Errorf("failed to marshal headlines: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO snapshots (query, provider, fetched_at, headlines)
		VALUES (?, ?, ?, ?)
	`, query, provider, fetchedAt.UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (r *SQLSnapshotRepository) GetLatestSnapshot(query string) (*Snapshot, error) {
	var snapshot Snapshot
	var fetchedAt string
	var payload string

	err := r.db.QueryRow(`
		SELECT id, query, provider, fetched_at, headlines
		FROM snapshots
		WHERE query = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`, query).Scan(&snapshot.ID, &snapshot.Query, &snapshot.Provider, &fetchedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	snapshot.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &snapshot.Headlines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal headlines: %w", err)
	}

	return &snapshot, nil
}

func (r *SQLSnapshotRepository) GetSnapshotCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// PruneSnapshots deletes all but the newest `keep` snapshots for a query.
func (r *SQLSnapshotRepository) PruneSnapshots(query string, keep int) error {
	_, err := r.db.Exec(`
		DELETE FROM snapshots
		WHERE query = ?
		  AND id NOT IN (
			SELECT id FROM snapshots
			WHERE query = ?
			ORDER BY fetched_at DESC
			LIMIT ?
		  )
	`, query, query, keep)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}
