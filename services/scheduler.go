// services/scheduler.go
package services

import (
	"log"
	"time"

	"dating-match-system/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// InactiveRetention is how long a user may stay silent before the feed
// hides them.
const InactiveRetention = 90 * 24 * time.Hour

// HousekeepingService runs the periodic maintenance jobs: VIP downgrade
// after expiry and hiding long-inactive users.
type HousekeepingService struct {
	DB *gorm.DB
}

func NewHousekeepingService(db *gorm.DB) *HousekeepingService {
	return &HousekeepingService{DB: db}
}

func (s *HousekeepingService) StartHousekeeping() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: downgrade expired VIPs
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			res := s.DB.Model(&models.DatingUser{}).
				Where("is_vip = ? AND vip_expires_at <= ?", true, time.Now()).
				Updates(map[string]interface{}{"is_vip": false, "vip_expires_at": nil})
			if res.Error != nil {
				log.Printf("[Housekeeping] VIP downgrade error: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("✅ Downgraded %d expired VIP(s)", res.RowsAffected)
			}
		}),
	)

	// Every hour: hide users inactive past the retention window
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-InactiveRetention)
			res := s.DB.Model(&models.DatingUser{}).
				Where("hidden = ? AND last_seen IS NOT NULL AND last_seen < ?", false, cutoff).
				Update("hidden", true)
			if res.Error != nil {
				log.Printf("[Housekeeping] inactive sweep error: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("✅ Hid %d inactive user(s)", res.RowsAffected)
			}
		}),
	)
}
