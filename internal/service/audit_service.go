package service

import (
	"context"
	"encoding/json"

	"weeskitten/internal/auth"
	"weeskitten/internal/model"
	"weeskitten/internal/repository"
)

type AuditLogResponse struct {
	ID         uint   `json:"id"`
	AdminID    *uint  `json:"admin_id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, page, limit int, action string) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int, action string) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.auditRepo.List(ctx, page, limit, action)
	if err != nil {
		return nil, 0, asAppError(err, "Failed to fetch audit logs")
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		username := l.Actor
		if username == "" {
			username = "System"
		}
		res = append(res, AuditLogResponse{
			ID:         l.ID,
			AdminID:    l.AdminID,
			Username:   username,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}

// logAudit writes one audit row through ctx, so it joins a surrounding transaction.
func logAudit(ctx context.Context, repo repository.AuditRepository, actor auth.Identity, action, entityID, entityName string, details any) error {
	var adminID *uint
	if actor.ID != 0 {
		id := actor.ID
		adminID = &id
	}

	payload, _ := json.Marshal(details)
	return repo.Log(ctx, &model.AuditLog{
		AdminID:    adminID,
		Actor:      actor.Username,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}
