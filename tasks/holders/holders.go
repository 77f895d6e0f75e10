// Package holders runs the top-holder refresh cycle: paginated fetch,
// normalization, bubble layout, snapshot publication.
package holders

import (
	"context"
	"sync/atomic"
	"time"

	cache "holdermap/cache/holders"
	"holdermap/layout"
	"holdermap/lcd"
	"holdermap/models"
	"holdermap/util/log"
)

// PageSource is the lazy page sequence consumed by one refresh cycle.
// *lcd.OwnersIterator implements it.
type PageSource interface {
	Next(ctx context.Context) ([]models.RawBalanceRecord, error)
}

// Ledger is the fetch boundary of the pipeline.
type Ledger interface {
	TotalSupply(denom string) (models.SupplyRecord, error)
	Owners(denom string, pageSize, maxRecords int, interval time.Duration) PageSource
}

// LCDLedger adapts *lcd.Client to the Ledger boundary.
type LCDLedger struct {
	Client *lcd.Client
}

func (l LCDLedger) TotalSupply(denom string) (models.SupplyRecord, error) {
	return l.Client.TotalSupply(denom)
}

func (l LCDLedger) Owners(denom string, pageSize, maxRecords int, interval time.Duration) PageSource {
	return l.Client.Owners(denom, pageSize, maxRecords, interval)
}

// Params are the refresh-cycle tunables, captured once at task creation.
type Params struct {
	Denom           string
	ScaleFactor     int64
	PageSize        int
	MaxRecords      int
	TopN            int
	PageInterval    time.Duration
	RefreshInterval time.Duration
	CanvasWidth     float64
	CanvasHeight    float64
	CanvasPadding   float64
}

// Task owns the FetchSession and the holder snapshot. All session writes
// happen on the task's own goroutine; manual triggers only signal it.
type Task struct {
	ledger     Ledger
	params     Params
	generation uint64
	triggerC   chan struct{}
}

// NewTask creates a holder refresh task over the given fetch boundary.
func NewTask(ledger Ledger, params Params) *Task {
	return &Task{
		ledger: ledger,
		params: params,
		// Capacity 1: a trigger arriving while a cycle runs coalesces
		// with any trigger already queued.
		triggerC: make(chan struct{}, 1),
	}
}

// StartHolderSyncTask refreshes once immediately, then on every tick of the
// refresh interval and on every manual trigger.
func (t *Task) StartHolderSyncTask(ctx context.Context) {
	go t.run(ctx)
}

// TriggerRefresh requests a refresh outside the periodic schedule (the
// renderer's retry button). Never blocks.
func (t *Task) TriggerRefresh() {
	select {
	case t.triggerC <- struct{}{}:
	default:
	}
}

func (t *Task) run(ctx context.Context) {
	log.Infof("holder sync task started, refresh interval %s", t.params.RefreshInterval)

	t.Refresh(ctx)

	ticker := time.NewTicker(t.params.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("holder sync task stopped")
			return
		case <-ticker.C:
			t.Refresh(ctx)
		case <-t.triggerC:
			t.Refresh(ctx)
		}
	}
}

// Refresh runs one full cycle. Each cycle gets a monotonically increasing
// generation; a cycle that has been superseded by the time it finishes has
// its result discarded instead of overwriting newer data.
func (t *Task) Refresh(ctx context.Context) {
	generation := atomic.AddUint64(&t.generation, 1)
	cache.SetLoading(generation)

	ranked, err := t.runCycle(ctx)

	if atomic.LoadUint64(&t.generation) != generation {
		log.Warnf("refresh generation %d superseded, result discarded", generation)
		return
	}

	if err != nil {
		log.Errorf("holder refresh failed: %v", err)
		cache.SetError(generation, err)
		return
	}

	cache.SetLive(generation, ranked)
	log.Infof("holder snapshot refreshed, %d holders ranked", len(ranked))
}

func (t *Task) runCycle(ctx context.Context) ([]models.RankedHolder, error) {
	p := t.params

	// Percentage computation is meaningless without supply, so a failure
	// here aborts the whole cycle.
	supply, err := t.ledger.TotalSupply(p.Denom)
	if err != nil {
		return nil, err
	}

	it := t.ledger.Owners(p.Denom, p.PageSize, p.MaxRecords, p.PageInterval)

	var raw []models.RawBalanceRecord
	for {
		page, err := it.Next(ctx)
		if err != nil {
			if len(raw) == 0 {
				return nil, &lcd.NoDataError{Denom: p.Denom, Err: err}
			}
			// A later page failing stops pagination early but does
			// not discard the pages already fetched.
			log.Warnf("pagination stopped early with %d records: %v", len(raw), err)
			break
		}
		if page == nil {
			break
		}
		raw = append(raw, page...)
	}

	if len(raw) == 0 {
		return nil, &lcd.NoDataError{Denom: p.Denom}
	}

	ranked, skipped := Normalize(raw, supply.Total, p.ScaleFactor, p.TopN)
	if skipped > 0 {
		log.Warnf("dropped %d unparseable balance records", skipped)
	}
	if len(ranked) == 0 {
		return nil, &lcd.NoDataError{Denom: p.Denom}
	}

	positions := layout.Compute(ranked, p.CanvasWidth, p.CanvasHeight, p.CanvasPadding)

	paired := make([]models.RankedHolder, len(ranked))
	for i := range ranked {
		paired[i] = models.RankedHolder{Holder: ranked[i], Position: positions[i]}
	}

	return paired, nil
}
