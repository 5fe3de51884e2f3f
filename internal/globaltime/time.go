package globaltime

import (
	"sync"
	"time"
)

// The process clock, swappable in tests so expiry windows can be
// exercised without sleeping.

var (
	mu      sync.RWMutex
	nowFunc = time.Now
)

func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return nowFunc()
}

func UTC() time.Time {
	return Now().UTC()
}

// Unix returns the current clock reading as epoch seconds.
func Unix() int64 {
	return Now().Unix()
}

func SetMockTime(t time.Time) {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = func() time.Time { return t }
}

func ResetTime() {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = time.Now
}
