// workers/presence_sweep_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"dating-match-system/models"

	"gorm.io/gorm"
)

// PresenceSweeper clears expired availability windows so the discovery feed
// stops surfacing users whose "available for N hours" slot has lapsed.
type PresenceSweeper struct {
	db       *gorm.DB
	interval time.Duration
}

func NewPresenceSweeper(db *gorm.DB) *PresenceSweeper {
	return &PresenceSweeper{
		db:       db,
		interval: 1 * time.Minute,
	}
}

func (w *PresenceSweeper) Start(ctx context.Context) {
	log.Println("🔁 Starting Presence Sweep Worker (availability windows)…")
	go w.run(ctx)
}

func (w *PresenceSweeper) run(ctx context.Context) {
	// Initial sweep so a restart doesn't leave stale windows around
	if err := w.sweep(); err != nil {
		log.Printf("⚠️ Initial presence sweep failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.sweep(); err != nil {
				log.Printf("❌ Presence sweep failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Presence Sweep Worker stopped")
			return
		}
	}
}

// sweep nulls out availability windows that ended in the past.
func (w *PresenceSweeper) sweep() error {
	res := w.db.Model(&models.DatingUser{}).
		Where("available_until IS NOT NULL AND available_until <= ?", time.Now()).
		Update("available_until", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[SWEEP] ✅ Cleared %d expired availability window(s)", res.RowsAffected)
	}
	return nil
}
