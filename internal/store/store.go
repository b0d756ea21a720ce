package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no run matches a lookup.
var ErrNotFound = errors.New("run not found")

// RunRecord is one finished run, kept for replay and regression checks. The
// seed together with the map digest reproduces the run; TrajectoryDigest
// fingerprints what actually happened.
type RunRecord struct {
	ID               string    `json:"id"`
	Seed             uint64    `json:"seed"`
	MapName          string    `json:"map_name"`
	MapDigest        string    `json:"map_digest"`
	Steps            int64     `json:"steps"`
	Outcome          string    `json:"outcome"`
	Score            int       `json:"score"`
	TrajectoryDigest string    `json:"trajectory_digest"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewRunRecord creates a record with a fresh ID and creation time.
func NewRunRecord(seed uint64, mapName, mapDigest string) *RunRecord {
	return &RunRecord{
		ID:        uuid.New().String(),
		Seed:      seed,
		MapName:   mapName,
		MapDigest: mapDigest,
		CreatedAt: time.Now(),
	}
}

// RunStore defines the interface for persistent run storage.
type RunStore interface {
	// SaveRun inserts a run record.
	SaveRun(ctx context.Context, run *RunRecord) error
	// FindRun looks up a run by ID. It returns ErrNotFound when missing.
	FindRun(ctx context.Context, id string) (*RunRecord, error)
	// ListBySeed returns the runs recorded for a seed and map, newest first.
	ListBySeed(ctx context.Context, seed uint64, mapDigest string) ([]*RunRecord, error)
	// Close releases database resources.
	Close() error
}
