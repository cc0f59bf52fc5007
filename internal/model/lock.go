package model

import "time"

// LockTTL is how long a record lock stays valid. Locks older than this are
// treated as free by every reader and cleared lazily on the next check.
const LockTTL = 30 * time.Minute

// RecordLock is the advisory lock state embedded on lockable business
// records (purchase orders, cash requests). There is no separate lock
// table: the lock lives on the row it protects.
type RecordLock struct {
	IsLocked     bool       `gorm:"default:false" json:"is_locked"`
	LockedBy     *string    `gorm:"type:varchar(255)" json:"locked_by,omitempty"`
	LockedByName *string    `gorm:"type:varchar(255)" json:"locked_by_name,omitempty"`
	LockedAt     *time.Time `json:"locked_at,omitempty"`
}

// IsStale reports whether the lock has outlived LockTTL relative to now.
// An unlocked or timestamp-less lock is never stale, it is simply free.
func (l *RecordLock) IsStale(now time.Time) bool {
	if !l.IsLocked || l.LockedAt == nil {
		return false
	}
	return now.Sub(*l.LockedAt) > LockTTL
}

// HeldBy reports whether the lock is currently held by the given actor.
func (l *RecordLock) HeldBy(actorID string) bool {
	return l.IsLocked && l.LockedBy != nil && *l.LockedBy == actorID
}

// HolderName returns the display name of the current holder, or "".
func (l *RecordLock) HolderName() string {
	if l.LockedByName == nil {
		return ""
	}
	return *l.LockedByName
}
