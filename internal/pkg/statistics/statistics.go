package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/shashank2020/samurais-admin/app/models"
	"github.com/shashank2020/samurais-admin/internal/pkg/cache"
	"github.com/shashank2020/samurais-admin/internal/pkg/database"
)

const (
	CacheKeyActiveMembers  = "statistics:members:active"
	CacheKeyPendingMembers = "statistics:members:pending"
	CacheKeyPaymentsDue    = "statistics:payments:due"
	CacheExpiration        = 30 * time.Minute
)

// StatisticsData holds the dashboard card figures
type StatisticsData struct {
	ActiveMembers  int
	PendingMembers int
	PaymentsDue    int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// cacheStale reports whether the refresh interval has elapsed.
// Callers must hold cacheUpdateMutex.
func cacheStale() bool {
	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has elapsed.
// The mutex is held across check and refresh so concurrent requests
// cannot both recompute.
func UpdateCacheIfNeeded() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	if !cacheStale() {
		return
	}
	if err := UpdateStatisticsCache(); err != nil {
		log.Printf("Error updating statistics cache: %v", err)
		return
	}
	lastCacheUpdate = time.Now()
}

// ResetCacheUpdateTimer forces the next read to refresh the cache
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes all dashboard figures and stores them
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var activeMembers int64
	if err := db.Model(&models.Member{}).Where("status = ?", models.MEMBER_STATUS_ACTIVE).Count(&activeMembers).Error; err != nil {
		log.Printf("Error counting active members: %v", err)
		return err
	}

	var pendingMembers int64
	if err := db.Model(&models.Member{}).Where("status = ?", models.MEMBER_STATUS_PENDING).Count(&pendingMembers).Error; err != nil {
		log.Printf("Error counting pending members: %v", err)
		return err
	}

	var paymentsDue int64
	if err := db.Model(&models.MemberInvoice{}).Where("is_paid = ?", false).Count(&paymentsDue).Error; err != nil {
		log.Printf("Error counting payments due: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyActiveMembers, strconv.FormatInt(activeMembers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching active members: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyPendingMembers, strconv.FormatInt(pendingMembers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching pending members: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyPaymentsDue, strconv.FormatInt(paymentsDue, 10), CacheExpiration); err != nil {
		log.Printf("Error caching payments due: %v", err)
		return err
	}

	log.Printf("Statistics updated in cache: Active: %d, Pending: %d, Payments due: %d",
		activeMembers, pendingMembers, paymentsDue)

	return nil
}

// GetActiveMembers returns the active member count from cache or database
func GetActiveMembers() int {
	return getCachedInt(CacheKeyActiveMembers)
}

// GetPendingMembers returns the pending member count from cache or database
func GetPendingMembers() int {
	return getCachedInt(CacheKeyPendingMembers)
}

// GetPaymentsDue returns the count of unpaid member invoice lines
func GetPaymentsDue() int {
	return getCachedInt(CacheKeyPaymentsDue)
}

// GetStatisticsData returns all dashboard figures, refreshing the cache
// when it has gone stale
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		ActiveMembers:  getCachedInt(CacheKeyActiveMembers),
		PendingMembers: getCachedInt(CacheKeyPendingMembers),
		PaymentsDue:    getCachedInt(CacheKeyPaymentsDue),
	}
}

func getCachedInt(key string) int {
	val, err := cache.Get(key)
	if err != nil {
		// Cache miss: recompute everything and retry once
		if err := UpdateStatisticsCache(); err != nil {
			return 0
		}
		val, err = cache.Get(key)
		if err != nil {
			return 0
		}
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}
