package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/pkg/util"
)

// AuditService records and exposes the admin activity log.
type AuditService struct {
	audits repository.AuditRepository
	logger *zap.Logger
}

// NewAuditService builds the service.
func NewAuditService(audits repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{audits: audits, logger: logger}
}

// Record appends an activity-log entry. Recording is best effort: a failed
// write is logged and never fails the operation it describes.
func (s *AuditService) Record(ctx context.Context, actorID string, action domain.AuditAction, resourceType, resourceID string, detail map[string]any) {
	entry := &domain.AuditEntry{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("actor_id", actorID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

// List returns activity-log entries for admin and above.
func (s *AuditService) List(ctx context.Context, actor *domain.Account, filter repository.AuditFilter) ([]domain.AuditEntry, error) {
	if !authz.Can(actor, authz.ActionViewAuditLogs) {
		return nil, util.NewAccessDenied(authz.RedirectAdminHome, map[string]any{
			"required_roles": []domain.Role{domain.RoleAdmin, domain.RoleChiefAdmin},
		})
	}
	entries, err := s.audits.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return entries, nil
}
