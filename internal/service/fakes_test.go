package service

import (
	"errors"
	"time"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errNotFound = errors.New("record not found")

// fakePurchaseOrderRepo keeps orders in memory, including the embedded
// advisory lock semantics of the real table.
type fakePurchaseOrderRepo struct {
	orders map[uuid.UUID]*model.PurchaseOrder
}

func newFakePurchaseOrderRepo(orders ...*model.PurchaseOrder) *fakePurchaseOrderRepo {
	f := &fakePurchaseOrderRepo{orders: make(map[uuid.UUID]*model.PurchaseOrder)}
	for _, po := range orders {
		f.orders[po.ID] = po
	}
	return f
}

func (f *fakePurchaseOrderRepo) GetLock(id uuid.UUID) (*model.RecordLock, error) {
	po, ok := f.orders[id]
	if !ok {
		return nil, errNotFound
	}
	lock := po.RecordLock
	return &lock, nil
}

func (f *fakePurchaseOrderRepo) TryLock(id uuid.UUID, actorID, actorName string, now time.Time) (bool, error) {
	po, ok := f.orders[id]
	if !ok {
		return false, errNotFound
	}
	if po.IsLocked && !po.HeldBy(actorID) && !po.IsStale(now) {
		return false, nil
	}
	po.IsLocked = true
	po.LockedBy = &actorID
	po.LockedByName = &actorName
	po.LockedAt = &now
	return true, nil
}

func (f *fakePurchaseOrderRepo) Unlock(id uuid.UUID) error {
	po, ok := f.orders[id]
	if !ok {
		return errNotFound
	}
	po.RecordLock = model.RecordLock{}
	return nil
}

func (f *fakePurchaseOrderRepo) FindByID(id uuid.UUID) (*model.PurchaseOrder, error) {
	po, ok := f.orders[id]
	if !ok {
		return nil, errNotFound
	}
	clone := *po
	return &clone, nil
}

func (f *fakePurchaseOrderRepo) FindByPONumber(poNumber string) (*model.PurchaseOrder, error) {
	for _, po := range f.orders {
		if po.PONumber == poNumber {
			clone := *po
			return &clone, nil
		}
	}
	return nil, errNotFound
}

func (f *fakePurchaseOrderRepo) FindByIDs(ids []uuid.UUID) ([]model.PurchaseOrder, error) {
	var out []model.PurchaseOrder
	for _, id := range ids {
		if po, ok := f.orders[id]; ok {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (f *fakePurchaseOrderRepo) FindByBulkRef(reference string) ([]model.PurchaseOrder, error) {
	var out []model.PurchaseOrder
	for _, po := range f.orders {
		if po.BulkPaymentRef != nil && *po.BulkPaymentRef == reference {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (f *fakePurchaseOrderRepo) FindAll(branchCodes []string) ([]model.PurchaseOrder, error) {
	var out []model.PurchaseOrder
	for _, po := range f.orders {
		if !po.IsActive {
			continue
		}
		if branchCodes == nil {
			out = append(out, *po)
			continue
		}
		for _, code := range branchCodes {
			if po.BranchCode == code {
				out = append(out, *po)
				break
			}
		}
	}
	return out, nil
}

func (f *fakePurchaseOrderRepo) Create(po *model.PurchaseOrder) error {
	clone := *po
	f.orders[po.ID] = &clone
	return nil
}

func (f *fakePurchaseOrderRepo) Update(po *model.PurchaseOrder) error {
	if _, ok := f.orders[po.ID]; !ok {
		return errNotFound
	}
	clone := *po
	f.orders[po.ID] = &clone
	return nil
}

// fakeCashRequestRepo mirrors fakePurchaseOrderRepo for the second
// lockable table.
type fakeCashRequestRepo struct {
	requests map[uuid.UUID]*model.CashRequest
}

func newFakeCashRequestRepo(requests ...*model.CashRequest) *fakeCashRequestRepo {
	f := &fakeCashRequestRepo{requests: make(map[uuid.UUID]*model.CashRequest)}
	for _, cr := range requests {
		f.requests[cr.ID] = cr
	}
	return f
}

func (f *fakeCashRequestRepo) GetLock(id uuid.UUID) (*model.RecordLock, error) {
	cr, ok := f.requests[id]
	if !ok {
		return nil, errNotFound
	}
	lock := cr.RecordLock
	return &lock, nil
}

func (f *fakeCashRequestRepo) TryLock(id uuid.UUID, actorID, actorName string, now time.Time) (bool, error) {
	cr, ok := f.requests[id]
	if !ok {
		return false, errNotFound
	}
	if cr.IsLocked && !cr.HeldBy(actorID) && !cr.IsStale(now) {
		return false, nil
	}
	cr.IsLocked = true
	cr.LockedBy = &actorID
	cr.LockedByName = &actorName
	cr.LockedAt = &now
	return true, nil
}

func (f *fakeCashRequestRepo) Unlock(id uuid.UUID) error {
	cr, ok := f.requests[id]
	if !ok {
		return errNotFound
	}
	cr.RecordLock = model.RecordLock{}
	return nil
}

func (f *fakeCashRequestRepo) FindByID(id uuid.UUID) (*model.CashRequest, error) {
	cr, ok := f.requests[id]
	if !ok {
		return nil, errNotFound
	}
	clone := *cr
	return &clone, nil
}

func (f *fakeCashRequestRepo) FindAll(branchCodes []string) ([]model.CashRequest, error) {
	var out []model.CashRequest
	for _, cr := range f.requests {
		if !cr.IsActive {
			continue
		}
		if branchCodes == nil {
			out = append(out, *cr)
			continue
		}
		for _, code := range branchCodes {
			if cr.BranchCode == code {
				out = append(out, *cr)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCashRequestRepo) Create(cr *model.CashRequest) error {
	clone := *cr
	f.requests[cr.ID] = &clone
	return nil
}

func (f *fakeCashRequestRepo) Update(cr *model.CashRequest) error {
	if _, ok := f.requests[cr.ID]; !ok {
		return errNotFound
	}
	clone := *cr
	f.requests[cr.ID] = &clone
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newFakeSupplierRepo(suppliers ...*model.Supplier) *fakeSupplierRepo {
	f := &fakeSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
	for _, s := range suppliers {
		f.suppliers[s.ID] = s
	}
	return f
}

func (f *fakeSupplierRepo) FindAll() ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range f.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSupplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (f *fakeSupplierRepo) Create(s *model.Supplier) error {
	f.suppliers[s.ID] = s
	return nil
}

func (f *fakeSupplierRepo) Update(s *model.Supplier) error {
	f.suppliers[s.ID] = s
	return nil
}

type fakeBulkPaymentRepo struct {
	payments map[string]*model.BulkPayment
}

func newFakeBulkPaymentRepo(payments ...*model.BulkPayment) *fakeBulkPaymentRepo {
	f := &fakeBulkPaymentRepo{payments: make(map[string]*model.BulkPayment)}
	for _, p := range payments {
		f.payments[p.Reference] = p
	}
	return f
}

func (f *fakeBulkPaymentRepo) FindAll() ([]model.BulkPayment, error) {
	var out []model.BulkPayment
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeBulkPaymentRepo) FindByReference(reference string) (*model.BulkPayment, error) {
	p, ok := f.payments[reference]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (f *fakeBulkPaymentRepo) Create(p *model.BulkPayment) error {
	f.payments[p.Reference] = p
	return nil
}

// fakePaymentStore stages writes against clones of the fake repo maps
// and only swaps them in when the transaction body succeeds, so an error
// anywhere discards every staged write like a real rollback.
type fakePaymentStore struct {
	orders *fakePurchaseOrderRepo
	bulks  *fakeBulkPaymentRepo

	failTagAt int // fail the Nth TagOrder call; 0 disables
	zeroTagAt int // report zero rows on the Nth TagOrder call; 0 disables
}

func newFakePaymentStore(orders *fakePurchaseOrderRepo, bulks *fakeBulkPaymentRepo) *fakePaymentStore {
	return &fakePaymentStore{orders: orders, bulks: bulks}
}

func (s *fakePaymentStore) InTransaction(fn func(tx repository.PaymentTx) error) error {
	tx := &fakePaymentTx{
		store:  s,
		orders: make(map[uuid.UUID]*model.PurchaseOrder, len(s.orders.orders)),
		bulks:  make(map[string]*model.BulkPayment, len(s.bulks.payments)),
	}
	for id, po := range s.orders.orders {
		clone := *po
		tx.orders[id] = &clone
	}
	for ref, bp := range s.bulks.payments {
		clone := *bp
		tx.bulks[ref] = &clone
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.orders.orders = tx.orders
	s.bulks.payments = tx.bulks
	return nil
}

type fakePaymentTx struct {
	store    *fakePaymentStore
	orders   map[uuid.UUID]*model.PurchaseOrder
	bulks    map[string]*model.BulkPayment
	tagCalls int
}

func (t *fakePaymentTx) CreateBulk(bp *model.BulkPayment) error {
	if _, ok := t.bulks[bp.Reference]; ok {
		return errors.New("duplicate reference")
	}
	if bp.ID == uuid.Nil {
		bp.ID = uuid.New()
	}
	clone := *bp
	t.bulks[bp.Reference] = &clone
	return nil
}

func (t *fakePaymentTx) TagOrder(poID uuid.UUID, reference, actorID string) (int64, error) {
	t.tagCalls++
	if t.store.failTagAt > 0 && t.tagCalls == t.store.failTagAt {
		return 0, errors.New("connection reset")
	}
	if t.store.zeroTagAt > 0 && t.tagCalls == t.store.zeroTagAt {
		return 0, nil
	}
	po, ok := t.orders[poID]
	if !ok {
		return 0, nil
	}
	if po.BulkPaymentRef != nil && *po.BulkPaymentRef != reference {
		return 0, nil
	}
	prevPaid := po.PaidAmount
	prevStatus := po.Status
	po.PriorPaidAmount = &prevPaid
	po.PriorStatus = &prevStatus
	ref := reference
	po.BulkPaymentRef = &ref
	po.PaidAmount = po.TotalAmount
	po.Status = model.POStatusPaid
	po.UpdatedBy = actorID
	return 1, nil
}

func (t *fakePaymentTx) UntagOrders(reference, actorID string) error {
	for _, po := range t.orders {
		if po.BulkPaymentRef == nil || *po.BulkPaymentRef != reference {
			continue
		}
		if po.PriorPaidAmount != nil {
			po.PaidAmount = *po.PriorPaidAmount
		} else {
			po.PaidAmount = decimal.Zero
		}
		if po.PriorStatus != nil {
			po.Status = *po.PriorStatus
		} else {
			po.Status = model.POStatusDelivered
		}
		po.BulkPaymentRef = nil
		po.PriorPaidAmount = nil
		po.PriorStatus = nil
		po.UpdatedBy = actorID
	}
	return nil
}

func (t *fakePaymentTx) DeleteBulk(reference string) error {
	delete(t.bulks, reference)
	return nil
}

// fakeAuditLogRepo appends in memory so tests can inspect what got
// recorded.
type fakeAuditLogRepo struct {
	entries []model.AuditLog
	failing bool
}

func (f *fakeAuditLogRepo) Create(entry *model.AuditLog) error {
	if f.failing {
		return errors.New("audit table unavailable")
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditLogRepo) FindAll(entityType, entityID string, limit int) ([]model.AuditLog, error) {
	var out []model.AuditLog
	for _, e := range f.entries {
		if entityType != "" && e.EntityType != entityType {
			continue
		}
		if entityID != "" && e.EntityID != entityID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
