package tasks

import (
	"context"

	"holdermap/config"
	"holdermap/lcd"
	"holdermap/tasks/holders"
	"holdermap/tasks/providers"
	"holdermap/util/log"
)

// Run starts all background sync tasks and returns the holder task so the
// API layer can wire up manual refresh.
func Run(ctx context.Context) *holders.Task {
	log.Info("Start holder dashboard data pipeline.")

	client := lcd.NewClient(config.GetLCDs(), config.GetRequestTimeout(), config.GetScaleFactor())

	width, height, padding := config.GetCanvas()
	holderTask := holders.NewTask(holders.LCDLedger{Client: client}, holders.Params{
		Denom:           config.GetDenom(),
		ScaleFactor:     config.GetScaleFactor(),
		PageSize:        config.GetPageSize(),
		MaxRecords:      config.GetMaxRecords(),
		TopN:            config.GetTopN(),
		PageInterval:    config.GetPageInterval(),
		RefreshInterval: config.GetRefreshInterval(),
		CanvasWidth:     width,
		CanvasHeight:    height,
		CanvasPadding:   padding,
	})
	holderTask.StartHolderSyncTask(ctx)

	providers.StartProviderSyncTask(ctx, client)

	return holderTask
}
