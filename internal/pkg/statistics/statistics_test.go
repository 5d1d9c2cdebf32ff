package statistics

import (
	"testing"
	"time"
)

func setLastCacheUpdate(t *testing.T, at time.Time) {
	t.Helper()

	cacheUpdateMutex.Lock()
	prev := lastCacheUpdate
	lastCacheUpdate = at
	cacheUpdateMutex.Unlock()

	t.Cleanup(func() {
		cacheUpdateMutex.Lock()
		lastCacheUpdate = prev
		cacheUpdateMutex.Unlock()
	})
}

func TestCacheStaleWindow(t *testing.T) {
	setLastCacheUpdate(t, time.Now())

	cacheUpdateMutex.Lock()
	fresh := cacheStale()
	cacheUpdateMutex.Unlock()
	if fresh {
		t.Fatal("cache reported stale right after an update")
	}

	setLastCacheUpdate(t, time.Now().Add(-cacheUpdateInterval-time.Second))

	cacheUpdateMutex.Lock()
	stale := cacheStale()
	cacheUpdateMutex.Unlock()
	if !stale {
		t.Fatal("cache reported fresh after the interval elapsed")
	}
}

func TestResetCacheUpdateTimer(t *testing.T) {
	setLastCacheUpdate(t, time.Now())

	ResetCacheUpdateTimer()

	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()
	if !cacheStale() {
		t.Fatal("reset timer should leave the cache stale")
	}
}
