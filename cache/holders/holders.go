// Package holders keeps the latest ranked-holder snapshot in memory for the
// widget API. State lives only for the current process; there is no
// cross-session persistence.
package holders

import (
	"sync"
	"time"

	"holdermap/models"
)

// Snapshot is what the renderer consumes: the session status plus the
// ranked holders with their canvas positions.
type Snapshot struct {
	Session models.FetchSession   `json:"session"`
	Holders []models.RankedHolder `json:"holders"`
}

var (
	mutex sync.RWMutex
	snap  Snapshot
)

// SetLoading resets the session at the start of a refresh cycle. The holder
// list is left untouched so the renderer keeps showing the previous data
// while the new cycle runs.
func SetLoading(generation uint64) {
	mutex.Lock()
	defer mutex.Unlock()

	snap.Session.State = models.StateLoading
	snap.Session.LastError = ""
	snap.Session.Generation = generation
}

// SetLive atomically replaces the holder list at the end of a successful
// cycle.
func SetLive(generation uint64, ranked []models.RankedHolder) {
	mutex.Lock()
	defer mutex.Unlock()

	snap.Holders = ranked
	snap.Session = models.FetchSession{
		State:       models.StateLive,
		LastUpdated: time.Now().UTC(),
		Generation:  generation,
	}
}

// SetError marks the cycle failed. Previously published holders stay
// available.
func SetError(generation uint64, err error) {
	mutex.Lock()
	defer mutex.Unlock()

	snap.Session.State = models.StateError
	snap.Session.LastError = err.Error()
	snap.Session.Generation = generation
}

// Get returns the current snapshot.
func Get() Snapshot {
	mutex.RLock()
	defer mutex.RUnlock()

	out := Snapshot{Session: snap.Session}
	out.Holders = append(out.Holders, snap.Holders...)
	return out
}
