package main

import (
	"context"
	"log"
	"time"

	"blogupBack/internal/repositories"
)

const (
	counterSyncInterval = 1 * time.Hour
	counterSyncTimeout  = 1 * time.Minute
)

// startCounterSync периодически сверяет responses_count объявлений с
// фактическим числом откликов: инкремент при создании не атомарный.
func startCounterSync(ctx context.Context, repo *repositories.ListingRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(counterSyncInterval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, counterSyncTimeout)
			fixed, err := repo.SyncResponseCounters(runCtx)
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("counter sync: %v", err)
				}
			} else if fixed > 0 && infoLog != nil {
				infoLog.Printf("counter sync: repaired %d listings", fixed)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
