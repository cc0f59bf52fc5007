package service

import (
	"encoding/json"

	"go-backoffice-ws/internal/model"
	"go-backoffice-ws/internal/repository"
	"go-backoffice-ws/internal/ws"
	"go-backoffice-ws/pkg/logger"
)

// Actor identifies who performed an audited write.
type Actor struct {
	ID   string
	Name string
}

// AuditService wraps writes with append-only before/after snapshots.
// Audit logging is strictly best-effort: a failed audit insert never fails
// or rolls back the primary operation, it is logged at warn level and
// swallowed.
type AuditService interface {
	// InsertAudited runs create and records the new value.
	InsertAudited(entityType, entityID string, create func() error, newValue interface{}, actor Actor) error
	// UpdateAudited captures the pre-image via loadBefore, runs update,
	// then records both snapshots. The pre-image read and the write are
	// not one atomic unit; a concurrent writer between the two can leave
	// a stale "before" snapshot in the audit entry.
	UpdateAudited(entityType, entityID string, loadBefore func() (interface{}, error), update func() error, newValue interface{}, actor Actor) error
	// SoftDeleteAudited captures the pre-image and runs deactivate,
	// which must clear the record's active flag rather than remove it.
	SoftDeleteAudited(entityType, entityID string, loadBefore func() (interface{}, error), deactivate func() error, actor Actor) error

	ListEntries(entityType, entityID string, limit int) ([]model.AuditLog, error)
}

type auditService struct {
	auditRepo repository.AuditLogRepository
	hub       *ws.Hub
}

func NewAuditService(auditRepo repository.AuditLogRepository, hub *ws.Hub) AuditService {
	return &auditService{auditRepo: auditRepo, hub: hub}
}

func (s *auditService) InsertAudited(entityType, entityID string, create func() error, newValue interface{}, actor Actor) error {
	if err := create(); err != nil {
		return err
	}
	s.record(model.AuditActionCreate, entityType, entityID, nil, newValue, actor)
	return nil
}

func (s *auditService) UpdateAudited(entityType, entityID string, loadBefore func() (interface{}, error), update func() error, newValue interface{}, actor Actor) error {
	before, err := loadBefore()
	if err != nil {
		return err
	}
	if err := update(); err != nil {
		return err
	}
	s.record(model.AuditActionUpdate, entityType, entityID, before, newValue, actor)
	return nil
}

func (s *auditService) SoftDeleteAudited(entityType, entityID string, loadBefore func() (interface{}, error), deactivate func() error, actor Actor) error {
	before, err := loadBefore()
	if err != nil {
		return err
	}
	if err := deactivate(); err != nil {
		return err
	}
	s.record(model.AuditActionSoftDelete, entityType, entityID, before, nil, actor)
	return nil
}

func (s *auditService) ListEntries(entityType, entityID string, limit int) ([]model.AuditLog, error) {
	return s.auditRepo.FindAll(entityType, entityID, limit)
}

// record writes the audit row and pushes an event to live sessions.
// Never returns an error to the caller.
func (s *auditService) record(action model.AuditAction, entityType, entityID string, before, after interface{}, actor Actor) {
	entry := &model.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		BeforeData: marshalSnapshot(before),
		AfterData:  marshalSnapshot(after),
	}

	if err := s.auditRepo.Create(entry); err != nil {
		log := logger.Get()
		log.Warn().
			Err(err).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Str("action", string(action)).
			Msg("audit: failed to write log entry")
		return
	}

	if s.hub != nil {
		go s.hub.BroadcastEvent(map[string]interface{}{
			"type":       "audit",
			"entity":     entityType,
			"record_id":  entityID,
			"action":     action,
			"actor_name": actor.Name,
		})
	}
}

// marshalSnapshot renders a snapshot as JSON, "null" for the missing side
// (jsonb rejects the empty string).
func marshalSnapshot(v interface{}) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
