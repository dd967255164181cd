// Package store persists the wish list to a local state directory. The
// on-disk format is four independently keyed JSON documents, one per entry
// attribute; the engine converts between that column layout and its
// composite records. The files are the schema: there is no versioning and
// the engine is the only writer.
package store

import "wanderlist/internal/domain"

// Snapshot is the column-oriented persisted form of the list: four parallel
// sequences, one per attribute, indexed by list position.
//
// A Snapshot read from disk may carry sequences of unequal length (a crash
// between file writes, or one corrupt file degraded to empty). Load does not
// validate alignment; the engine reconciles.
type Snapshot struct {
	Names       []string
	Coordinates []domain.Coordinates
	Visited     []bool
	Weather     []*domain.Weather
}

// Store is the persistence boundary the engine depends on.
// The engine, not the interface, decides the save cadence (after every
// successful mutation) and treats Save as best effort.
type Store interface {
	// Load reads the four attribute sequences. Reading never fails outright:
	// a missing or unreadable attribute degrades to an empty sequence.
	Load() Snapshot

	// Save replaces the stored sequences with the given ones. Errors wrap
	// domain.ErrPersistence.
	Save(Snapshot) error
}
