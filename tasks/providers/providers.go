// Package providers refreshes the provider directory feeding the dashboard's
// provider table widget.
package providers

import (
	"context"
	"time"

	cache "holdermap/cache/providers"
	"holdermap/config"
	"holdermap/lcd"
	"holdermap/util/log"
)

// StartProviderSyncTask polls the provider directory on the shared refresh
// interval. A failed poll keeps the previous listing.
func StartProviderSyncTask(ctx context.Context, client *lcd.Client) {
	directoryURL := config.GetProviderDirectory()
	if directoryURL == "" {
		log.Info("no provider directory configured, provider widget disabled")
		return
	}

	go func() {
		refresh(client, directoryURL)

		ticker := time.NewTicker(config.GetRefreshInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh(client, directoryURL)
			}
		}
	}()
}

func refresh(client *lcd.Client, directoryURL string) {
	providers, err := client.Providers(directoryURL)
	if err != nil {
		log.Warnf("provider directory refresh failed: %v", err)
		return
	}

	cache.Set(providers)
	log.Debugf("provider directory refreshed, %d providers", len(providers))
}
