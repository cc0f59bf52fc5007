package service

import (
	"testing"
	"time"

	"go-backoffice-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockedOrder(actorID, actorName string, lockedAt time.Time) *model.PurchaseOrder {
	po := &model.PurchaseOrder{}
	po.ID = uuid.New()
	po.IsActive = true
	po.IsLocked = true
	po.LockedBy = &actorID
	po.LockedByName = &actorName
	po.LockedAt = &lockedAt
	return po
}

func TestAcquireFreeRecord(t *testing.T) {
	po := &model.PurchaseOrder{}
	po.ID = uuid.New()
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	res, err := svc.Acquire(LockEntityPurchaseOrder, po.ID, "user-1", "Alice")
	require.NoError(t, err)
	assert.True(t, res.Granted)
	assert.Equal(t, "Alice", res.HolderName)
}

func TestAcquireHeldByOtherDeniedWithHolderName(t *testing.T) {
	po := lockedOrder("user-1", "Alice", time.Now())
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	res, err := svc.Acquire(LockEntityPurchaseOrder, po.ID, "user-2", "Bob")
	require.NoError(t, err)
	assert.False(t, res.Granted)
	assert.Equal(t, "Alice", res.HolderName)
}

func TestAcquireOwnLockIsIdempotent(t *testing.T) {
	po := lockedOrder("user-1", "Alice", time.Now())
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	res, err := svc.Acquire(LockEntityPurchaseOrder, po.ID, "user-1", "Alice")
	require.NoError(t, err)
	assert.True(t, res.Granted)
}

func TestAcquireStealsStaleLock(t *testing.T) {
	// Held 31 minutes: one minute past the TTL
	po := lockedOrder("user-1", "Alice", time.Now().Add(-model.LockTTL-time.Minute))
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	res, err := svc.Acquire(LockEntityPurchaseOrder, po.ID, "user-2", "Bob")
	require.NoError(t, err)
	assert.True(t, res.Granted)

	lock, err := repo.GetLock(po.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", lock.HolderName())
}

func TestReleaseByHolder(t *testing.T) {
	po := lockedOrder("user-1", "Alice", time.Now())
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	require.NoError(t, svc.Release(LockEntityPurchaseOrder, po.ID, "user-1"))

	lock, err := repo.GetLock(po.ID)
	require.NoError(t, err)
	assert.False(t, lock.IsLocked)
}

func TestReleaseByNonHolderRejected(t *testing.T) {
	po := lockedOrder("user-1", "Alice", time.Now())
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	err := svc.Release(LockEntityPurchaseOrder, po.ID, "user-2")
	assert.ErrorIs(t, err, ErrNotLockHolder)

	lock, lockErr := repo.GetLock(po.ID)
	require.NoError(t, lockErr)
	assert.True(t, lock.IsLocked, "lock must survive a rejected release")
}

func TestReleaseUnlockedRecordIsNoop(t *testing.T) {
	po := &model.PurchaseOrder{}
	po.ID = uuid.New()
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	assert.NoError(t, svc.Release(LockEntityPurchaseOrder, po.ID, "anyone"))
}

func TestCheckLiveLock(t *testing.T) {
	po := lockedOrder("user-1", "Alice", time.Now())
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	status, err := svc.Check(LockEntityPurchaseOrder, po.ID)
	require.NoError(t, err)
	assert.True(t, status.Locked)
	assert.Equal(t, "Alice", status.HolderName)
}

func TestCheckClearsStaleLock(t *testing.T) {
	po := lockedOrder("user-1", "Alice", time.Now().Add(-model.LockTTL-time.Minute))
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	status, err := svc.Check(LockEntityPurchaseOrder, po.ID)
	require.NoError(t, err)
	assert.False(t, status.Locked)

	// Lazy expiry must have cleared the stored row too
	lock, err := repo.GetLock(po.ID)
	require.NoError(t, err)
	assert.False(t, lock.IsLocked)
}

func TestCheckLockExactlyAtTTLStillLive(t *testing.T) {
	po := lockedOrder("user-1", "Alice", time.Now().Add(-model.LockTTL+time.Second))
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	status, err := svc.Check(LockEntityPurchaseOrder, po.ID)
	require.NoError(t, err)
	assert.True(t, status.Locked)
}

func TestForceReleaseRequiresAdminTier(t *testing.T) {
	po := lockedOrder("user-1", "Alice", time.Now())
	repo := newFakePurchaseOrderRepo(po)
	svc := NewLockService(repo, newFakeCashRequestRepo(), nil)

	for _, role := range []model.Role{model.RoleFinance, model.RolePICBranch, model.RoleStaff, model.RoleGuest} {
		err := svc.ForceRelease(LockEntityPurchaseOrder, po.ID, role)
		assert.ErrorIs(t, err, ErrForceNotAllowed, "role %s", role)
	}

	require.NoError(t, svc.ForceRelease(LockEntityPurchaseOrder, po.ID, model.RoleAdmin))
	lock, err := repo.GetLock(po.ID)
	require.NoError(t, err)
	assert.False(t, lock.IsLocked)
}

func TestUnknownEntityRejected(t *testing.T) {
	svc := NewLockService(newFakePurchaseOrderRepo(), newFakeCashRequestRepo(), nil)

	_, err := svc.Acquire("invoices", uuid.New(), "user-1", "Alice")
	assert.ErrorIs(t, err, ErrUnknownLockEntity)
}

func TestCashRequestLocksAreIndependent(t *testing.T) {
	cr := &model.CashRequest{}
	cr.ID = uuid.New()
	poRepo := newFakePurchaseOrderRepo()
	crRepo := newFakeCashRequestRepo(cr)
	svc := NewLockService(poRepo, crRepo, nil)

	res, err := svc.Acquire(LockEntityCashRequest, cr.ID, "user-1", "Alice")
	require.NoError(t, err)
	assert.True(t, res.Granted)

	// The same ID on the other entity resolves against the other table
	_, err = svc.Check(LockEntityPurchaseOrder, cr.ID)
	assert.Error(t, err)
}
