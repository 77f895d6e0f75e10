// Package providers keeps the latest provider directory listing in memory.
package providers

import (
	"sync"
	"time"

	"holdermap/models"
)

var (
	mutex   sync.RWMutex
	list    []models.Provider
	updated time.Time
)

// Set replaces the cached provider listing.
func Set(providers []models.Provider) {
	mutex.Lock()
	defer mutex.Unlock()

	list = providers
	updated = time.Now().UTC()
}

// Get returns the cached listing and when it was last refreshed.
func Get() ([]models.Provider, time.Time) {
	mutex.RLock()
	defer mutex.RUnlock()

	out := append([]models.Provider(nil), list...)
	return out, updated
}
