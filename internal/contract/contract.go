// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/decider/schema"
)

// FragmentStore is the URL fragment a matrix is shared through.
// Replacing the fragment must not navigate; it only rewrites the current address.
type FragmentStore interface {
	// ReadFragment returns the current fragment without the leading '#'.
	ReadFragment() (string, error)

	// ReplaceFragment swaps the current fragment for the given one.
	ReplaceFragment(fragment string) error
}

// LinkProvider is implemented by fragment stores that can produce a full share link.
type LinkProvider interface {
	ShareLink() (string, error)
}

// StateStore is the local key-value persistence for a single matrix blob.
type StateStore interface {
	// ReadState returns the stored blob and whether one exists.
	ReadState() (string, bool, error)

	// WriteState replaces the stored blob.
	WriteState(blob string) error
}

// Renderer redraws the presentation layer from a view-model.
type Renderer interface {
	Render(view schema.MatrixView) error
}

// Notifier surfaces transient, user-visible notices.
type Notifier interface {
	Notify(level schema.NoticeLevel, message string)
}

// StoreManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetStateStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for key-value data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	Delete(key string) error
	GetStatus() (schema.StoreStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking calculation runs and their results.
type HistoryStore interface {
	// BeginRun creates a new calculation run and returns its unique ID
	BeginRun(runTime time.Time, optionCount, criterionCount int, fragment string) (int64, error)

	// RecordResult stores one ranked option result for a run
	RecordResult(runID int64, result schema.RankedResult) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded calculation run
	GetAllRuns() ([]schema.CalculationRunRecord, error)

	// GetAllResults returns every recorded option result
	GetAllResults() ([]schema.OptionResultRecord, error)

	// Close closes the underlying connection
	Close() error
}
