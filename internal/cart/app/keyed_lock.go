package app

import "sync"

// keyedLock serializes mutations per cart identity while leaving distinct
// identities concurrent. Entries are never evicted; the population is bounded
// by active carts.
type keyedLock struct {
	mus sync.Map
}

func (k *keyedLock) lock(key string) (unlock func()) {
	v, _ := k.mus.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
