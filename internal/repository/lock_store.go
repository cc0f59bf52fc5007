package repository

import (
	"time"

	"go-backoffice-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LockStore reads and writes the advisory lock fields embedded on a
// lockable business record. Implemented by the purchase order and cash
// request repositories over their own tables.
type LockStore interface {
	GetLock(id uuid.UUID) (*model.RecordLock, error)
	// TryLock attempts to take the lock with a single conditional UPDATE:
	// the row is claimed only if it is currently unlocked, already held by
	// the requester, or the existing lock is older than model.LockTTL.
	// Returns false when another actor holds a live lock.
	TryLock(id uuid.UUID, actorID, actorName string, now time.Time) (bool, error)
	Unlock(id uuid.UUID) error
}

// lockStore is the shared gorm implementation, parameterised by table.
type lockStore struct {
	db    *gorm.DB
	table string
}

func (s *lockStore) GetLock(id uuid.UUID) (*model.RecordLock, error) {
	var lock model.RecordLock
	err := s.db.Table(s.table).
		Select("is_locked", "locked_by", "locked_by_name", "locked_at").
		Where("id = ?", id).
		Take(&lock).Error
	if err != nil {
		return nil, err
	}
	return &lock, nil
}

func (s *lockStore) TryLock(id uuid.UUID, actorID, actorName string, now time.Time) (bool, error) {
	staleBefore := now.Add(-model.LockTTL)
	res := s.db.Table(s.table).
		Where("id = ?", id).
		Where("is_locked = ? OR locked_by = ? OR locked_at < ?", false, actorID, staleBefore).
		Updates(map[string]interface{}{
			"is_locked":      true,
			"locked_by":      actorID,
			"locked_by_name": actorName,
			"locked_at":      now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *lockStore) Unlock(id uuid.UUID) error {
	return s.db.Table(s.table).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_locked":      false,
			"locked_by":      nil,
			"locked_by_name": nil,
			"locked_at":      nil,
		}).Error
}
