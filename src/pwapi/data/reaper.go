package data

import (
	"context"
	"log"
	"time"
)

// RunReaper sweeps expired records on a fixed interval until ctx is
// cancelled. Runs once immediately so a restart does not leave a backlog of
// expired rows sitting until the first tick.
func RunReaper(ctx context.Context, store *Store, interval time.Duration) {
	reapOnce(store)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("reaper: stopping")
			return
		case <-ticker.C:
			reapOnce(store)
		}
	}
}

func reapOnce(store *Store) {
	n, err := store.DeleteExpired()
	if err != nil {
		log.Printf("reaper: sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("reaper: purged %d expired records", n)
	}
}
