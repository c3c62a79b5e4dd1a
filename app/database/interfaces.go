package database

import (
	"time"

	"github.com/BigPhill11/market-brief/app/headline"
)

// Snapshot is one cached pipeline result: the processed headlines from a
// single provider fetch. Recaps are not stored; they are recomputed per
// request from the headlines at the caller's reading level.
type Snapshot struct {
	ID        int64
	Query     string
	Provider  string
	FetchedAt time.Time
	Headlines []headline.ProcessedHeadline
}

type SnapshotRepository interface {
	SaveSnapshot(query, provider string, fetchedAt time.Time, headlines []headline.ProcessedHeadline) error
	GetLatestSnapshot(query string) (*Snapshot, error)
	GetSnapshotCount() (int, error)
	PruneSnapshots(query string, keep int) error
}
