package cas

import "time"

// NewStoreWithRetryDelay creates a Store polling the lock at the given interval.
func NewStoreWithRetryDelay(d time.Duration) *Store {
	return &Store{retryDelay: d}
}
