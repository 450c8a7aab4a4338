package app

import (
	"context"
	"log"
	"time"

	"github.com/halvard/sonarmix/internal/state"
	"github.com/halvard/sonarmix/sonar"
)

const defaultPollInterval = 2 * time.Second

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client *sonar.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			refresh(ctx, store, client)
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client *sonar.Client) {
	volume, err := client.VolumeData(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		log.Printf("volume poll failed: %v", err)
		return
	}
	chat, err := client.ChatMixData(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		log.Printf("chat mix poll failed: %v", err)
		return
	}
	store.Update(&volume, &chat, nil)
}
