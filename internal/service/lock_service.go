package service

import (
	"errors"
	"fmt"
	"time"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrUnknownLockEntity = errors.New("unknown lockable entity")
	ErrNotLockHolder     = errors.New("record is locked by another user")
	ErrForceNotAllowed   = errors.New("force release requires an admin role")
)

// Lockable entity keys, matching the underlying table names
const (
	LockEntityPurchaseOrder = "purchase_orders"
	LockEntityCashRequest   = "cash_requests"
)

// LockResult is the outcome of an acquire attempt. When not granted,
// HolderName carries the current holder so the caller can show who to wait
// for or escalate to an admin force-release.
type LockResult struct {
	Granted    bool   `json:"granted"`
	HolderName string `json:"holder_name,omitempty"`
}

// LockStatus is the outcome of a lock check.
type LockStatus struct {
	Locked     bool   `json:"locked"`
	HolderName string `json:"holder_name,omitempty"`
}

type LockService interface {
	// Acquire takes the advisory lock on a record. Re-acquiring an own or
	// stale lock succeeds; a live lock held by someone else is denied
	// with the holder's name.
	Acquire(entity string, id uuid.UUID, actorID, actorName string) (*LockResult, error)
	// Release frees the lock. Only the current holder may release; a
	// record that is already free releases as a no-op.
	Release(entity string, id uuid.UUID, actorID string) error
	// Check reports the lock state, lazily clearing a lock older than
	// model.LockTTL as a side effect.
	Check(entity string, id uuid.UUID) (*LockStatus, error)
	// ForceRelease frees the lock regardless of holder. Admin-tier roles
	// only; the role comes from validated JWT claims, never from the
	// request body.
	ForceRelease(entity string, id uuid.UUID, requesterRole model.Role) error
}

type lockService struct {
	stores map[string]repository.LockStore
	hub    *ws.Hub
}

func NewLockService(poRepo repository.PurchaseOrderRepository, cashRepo repository.CashRequestRepository, hub *ws.Hub) LockService {
	return &lockService{
		stores: map[string]repository.LockStore{
			LockEntityPurchaseOrder: poRepo,
			LockEntityCashRequest:   cashRepo,
		},
		hub: hub,
	}
}

func (s *lockService) store(entity string) (repository.LockStore, error) {
	store, ok := s.stores[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLockEntity, entity)
	}
	return store, nil
}

func (s *lockService) Acquire(entity string, id uuid.UUID, actorID, actorName string) (*LockResult, error) {
	store, err := s.store(entity)
	if err != nil {
		return nil, err
	}

	// Conditional update: only claims the row when it is free, ours, or
	// stale. Two racing acquires cannot both succeed.
	granted, err := store.TryLock(id, actorID, actorName, time.Now())
	if err != nil {
		return nil, err
	}
	if !granted {
		lock, err := store.GetLock(id)
		if err != nil {
			return nil, err
		}
		return &LockResult{Granted: false, HolderName: lock.HolderName()}, nil
	}

	s.broadcastLock(entity, id, true, actorName)
	return &LockResult{Granted: true, HolderName: actorName}, nil
}

func (s *lockService) Release(entity string, id uuid.UUID, actorID string) error {
	store, err := s.store(entity)
	if err != nil {
		return err
	}

	lock, err := store.GetLock(id)
	if err != nil {
		return err
	}
	if !lock.IsLocked {
		return nil
	}
	if !lock.HeldBy(actorID) && !lock.IsStale(time.Now()) {
		return ErrNotLockHolder
	}

	if err := store.Unlock(id); err != nil {
		return err
	}
	s.broadcastLock(entity, id, false, "")
	return nil
}

func (s *lockService) Check(entity string, id uuid.UUID) (*LockStatus, error) {
	store, err := s.store(entity)
	if err != nil {
		return nil, err
	}

	lock, err := store.GetLock(id)
	if err != nil {
		return nil, err
	}
	if !lock.IsLocked {
		return &LockStatus{Locked: false}, nil
	}
	if lock.IsStale(time.Now()) {
		// Lazy expiry: the first reader past the TTL clears the row
		if err := store.Unlock(id); err != nil {
			return nil, err
		}
		s.broadcastLock(entity, id, false, "")
		return &LockStatus{Locked: false}, nil
	}
	return &LockStatus{Locked: true, HolderName: lock.HolderName()}, nil
}

func (s *lockService) ForceRelease(entity string, id uuid.UUID, requesterRole model.Role) error {
	if !requesterRole.IsAdminTier() {
		return ErrForceNotAllowed
	}
	store, err := s.store(entity)
	if err != nil {
		return err
	}
	if err := store.Unlock(id); err != nil {
		return err
	}
	s.broadcastLock(entity, id, false, "")
	return nil
}

func (s *lockService) broadcastLock(entity string, id uuid.UUID, locked bool, holderName string) {
	if s.hub == nil {
		return
	}
	go s.hub.BroadcastEvent(map[string]interface{}{
		"type":        "lock_update",
		"entity":      entity,
		"record_id":   id.String(),
		"locked":      locked,
		"holder_name": holderName,
	})
}
