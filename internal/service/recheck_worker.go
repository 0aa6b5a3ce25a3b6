package service

import (
	"context"
	"log"
	"time"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/repository"
)

// RecheckWorker periodically clears the verified flag on profiles whose
// last check is older than the recheck interval. The server never calls
// Telegram or Steam itself; the flag comes back when the client next
// checks in and the predicate still holds.
type RecheckWorker struct {
	repo     *repository.Repository
	interval time.Duration
}

func NewRecheckWorker(repo *repository.Repository, interval time.Duration) *RecheckWorker {
	return &RecheckWorker{repo: repo, interval: interval}
}

func (w *RecheckWorker) Start(ctx context.Context) {
	log.Printf("[Recheck Worker] Started, checking every %v", w.interval)

	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Recheck Worker] Stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *RecheckWorker) check(ctx context.Context) {
	cutoff := staleCutoff(time.Now(), w.interval)
	telegram, steam, err := w.repo.MarkStaleProfiles(ctx, cutoff)
	if err != nil {
		log.Printf("[Recheck Worker] Failed to flag stale profiles: %v", err)
		return
	}
	if telegram == 0 && steam == 0 {
		return
	}
	log.Printf("[Recheck Worker] Flagged stale profiles for re-verification: telegram=%d steam=%d", telegram, steam)
}

// staleCutoff is the last_check threshold below which a verified profile
// loses its flag.
func staleCutoff(now time.Time, interval time.Duration) time.Time {
	return now.Add(-interval)
}
