package models

import "time"

// DataSourceState tells the renderer which empty/loading/error branch to show.
type DataSourceState string

const (
	StateLoading DataSourceState = "loading"
	StateLive    DataSourceState = "live"
	StateError   DataSourceState = "error"
)

// FetchSession is the ephemeral per-view refresh state. It is reset at the
// start of every refresh cycle and written only by the holder sync task.
type FetchSession struct {
	State       DataSourceState `json:"state"`
	LastError   string          `json:"last_error,omitempty"`
	LastUpdated time.Time       `json:"last_updated,omitempty"`
	Generation  uint64          `json:"generation"`
}
