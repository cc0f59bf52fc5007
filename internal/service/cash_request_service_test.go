package service

import (
	"testing"
	"time"

	"go-backoffice-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingCashRequest(branch string) *model.CashRequest {
	cr := &model.CashRequest{
		RequestNumber: "CR-001",
		BranchCode:    branch,
		Amount:        decimal.NewFromInt(250),
		Purpose:       "office supplies",
		Status:        model.CashStatusPending,
		IsActive:      true,
	}
	cr.ID = uuid.New()
	return cr
}

func newTestCashService(repo *fakeCashRequestRepo) CashRequestService {
	return NewCashRequestService(repo, NewAuditService(&fakeAuditLogRepo{}, nil))
}

func TestCreateRequestStartsPending(t *testing.T) {
	repo := newFakeCashRequestRepo()
	svc := newTestCashService(repo)

	cr, err := svc.CreateRequest(&CreateCashRequestRequest{
		RequestNumber: "CR-010",
		BranchCode:    "JKT-01",
		Amount:        decimal.NewFromInt(100),
		Purpose:       "petty cash top up",
	}, BranchScope{Codes: []string{"JKT-01"}}, Actor{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, model.CashStatusPending, cr.Status)
	assert.True(t, cr.IsActive)
}

func TestCreateRequestOutsideScopeDenied(t *testing.T) {
	svc := newTestCashService(newFakeCashRequestRepo())

	_, err := svc.CreateRequest(&CreateCashRequestRequest{
		RequestNumber: "CR-010",
		BranchCode:    "JKT-01",
		Amount:        decimal.NewFromInt(100),
		Purpose:       "petty cash top up",
	}, BranchScope{Codes: []string{"BDG-02"}}, Actor{ID: "u1"})
	assert.ErrorIs(t, err, ErrBranchDenied)
}

func TestCreateRequestRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestCashService(newFakeCashRequestRepo())

	_, err := svc.CreateRequest(&CreateCashRequestRequest{
		RequestNumber: "CR-010",
		BranchCode:    "JKT-01",
		Amount:        decimal.Zero,
		Purpose:       "petty cash top up",
	}, BranchScope{All: true}, Actor{ID: "u1"})
	assert.Error(t, err)
}

func TestUpdateStatusApproves(t *testing.T) {
	cr := pendingCashRequest("JKT-01")
	repo := newFakeCashRequestRepo(cr)
	svc := newTestCashService(repo)

	updated, err := svc.UpdateStatus(cr.ID, model.CashStatusApproved, BranchScope{All: true}, Actor{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, model.CashStatusApproved, updated.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	cr := pendingCashRequest("JKT-01")
	svc := newTestCashService(newFakeCashRequestRepo(cr))

	_, err := svc.UpdateStatus(cr.ID, "escalated", BranchScope{All: true}, Actor{ID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestUpdateStatusPaidOutIsTerminal(t *testing.T) {
	cr := pendingCashRequest("JKT-01")
	cr.Status = model.CashStatusPaidOut
	svc := newTestCashService(newFakeCashRequestRepo(cr))

	_, err := svc.UpdateStatus(cr.ID, model.CashStatusPending, BranchScope{All: true}, Actor{ID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestUpdateStatusHonorsForeignLock(t *testing.T) {
	cr := pendingCashRequest("JKT-01")
	holder := "user-9"
	holderName := "Carol"
	now := time.Now()
	cr.IsLocked = true
	cr.LockedBy = &holder
	cr.LockedByName = &holderName
	cr.LockedAt = &now
	svc := newTestCashService(newFakeCashRequestRepo(cr))

	_, err := svc.UpdateStatus(cr.ID, model.CashStatusApproved, BranchScope{All: true}, Actor{ID: "u1"})
	assert.ErrorIs(t, err, ErrRecordLocked)
}

func TestDeleteRequestIsSoft(t *testing.T) {
	cr := pendingCashRequest("JKT-01")
	repo := newFakeCashRequestRepo(cr)
	svc := newTestCashService(repo)

	require.NoError(t, svc.DeleteRequest(cr.ID, BranchScope{All: true}, Actor{ID: "u1"}))

	stored, err := repo.FindByID(cr.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestListRequestsRespectsScope(t *testing.T) {
	jkt := pendingCashRequest("JKT-01")
	bdg := pendingCashRequest("BDG-02")
	bdg.RequestNumber = "CR-002"
	repo := newFakeCashRequestRepo(jkt, bdg)
	svc := newTestCashService(repo)

	out, err := svc.ListRequests(BranchScope{Codes: []string{"JKT-01"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "CR-001", out[0].RequestNumber)

	out, err = svc.ListRequests(BranchScope{All: true})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
