// Package iocache persists decision matrices and calculation history.
package iocache

import (
	"sync"

	"github.com/huangsam/decider/internal/contract"
)

// StoreManager manages the state and history stores.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	state        contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetStateStore returns the key-value state store.
func (mgr *StoreManager) GetStateStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.state
}

// GetHistoryStore returns the calculation history store.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
