package store

import "sync"

var (
	defaultStore *Store
	storeOnce    sync.Once

	defaultScheduler *ExpiryScheduler
	schedulerOnce    sync.Once
)

// Init initializes the global store instance over the given data file.
func Init(path string) (*Store, error) {
	var err error
	storeOnce.Do(func() {
		defaultStore, err = Open(path)
	})
	return defaultStore, err
}

// Get returns the global store instance.
func Get() *Store {
	return defaultStore
}

// InitScheduler initializes the global expiry scheduler bound to the global
// store and the external unmute action.
func InitScheduler(action UnmuteAction) *ExpiryScheduler {
	schedulerOnce.Do(func() {
		defaultScheduler = NewExpiryScheduler(defaultStore, action)
	})
	return defaultScheduler
}

// Scheduler returns the global expiry scheduler.
func Scheduler() *ExpiryScheduler {
	return defaultScheduler
}
