package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/identity"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/pkg/util"
)

// AccountService manages user records from the admin console plus profile
// self-service.
type AccountService struct {
	accounts repository.AccountRepository
	staff    repository.StaffRepository
	provider identity.Provider
	audit    *AuditService
	logger   *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(
	accounts repository.AccountRepository,
	staff repository.StaffRepository,
	provider identity.Provider,
	audit *AuditService,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		staff:    staff,
		provider: provider,
		audit:    audit,
		logger:   logger,
	}
}

// List returns account records for the user-management surface.
func (s *AccountService) List(ctx context.Context, actor *domain.Account, filter repository.AccountFilter) ([]domain.Account, error) {
	if !authz.Can(actor, authz.ActionManageAgents) {
		return nil, accessDenied(actor)
	}
	accounts, err := s.accounts.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return accounts, nil
}

// Get returns a single account record.
func (s *AccountService) Get(ctx context.Context, actor *domain.Account, accountID string) (*domain.Account, error) {
	if !authz.Can(actor, authz.ActionManageAgents) {
		return nil, accessDenied(actor)
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("account", map[string]any{"id": accountID})
		}
		return nil, util.MapError(err)
	}
	return account, nil
}

// Promote raises an account to a staff role and creates its staff record.
// Promoting an account that already holds a staff record is idempotent.
func (s *AccountService) Promote(ctx context.Context, actor *domain.Account, accountID string, role domain.Role, department, position string) (*domain.Account, error) {
	if !authz.Can(actor, authz.ActionPromoteUser) {
		return nil, accessDenied(actor)
	}
	if !role.Valid() || !role.IsAdminTier() {
		return nil, util.NewValidationError("role must be agent, admin or chief_admin", map[string]any{"role": role})
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("account", map[string]any{"id": accountID})
		}
		return nil, util.MapError(err)
	}

	previous := account.Role
	if err := s.accounts.UpdateRole(ctx, accountID, role); err != nil {
		return nil, util.MapError(err)
	}
	account.Role = role

	staff := &domain.StaffProfile{AccountID: accountID, Department: department, Position: position}
	if err := s.staff.Create(ctx, staff); err != nil && !repository.IsUniqueViolation(err) {
		return nil, util.MapError(err)
	}

	s.audit.Record(ctx, actor.ID, domain.AuditActionPromoteUser, "account", accountID, map[string]any{
		"from": previous,
		"to":   role,
	})
	return account, nil
}

// Demote returns an account to customer and removes its staff record.
func (s *AccountService) Demote(ctx context.Context, actor *domain.Account, accountID string) (*domain.Account, error) {
	if !authz.Can(actor, authz.ActionDemoteUser) {
		return nil, accessDenied(actor)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("account", map[string]any{"id": accountID})
		}
		return nil, util.MapError(err)
	}

	previous := account.Role
	if err := s.accounts.UpdateRole(ctx, accountID, domain.RoleCustomer); err != nil {
		return nil, util.MapError(err)
	}
	account.Role = domain.RoleCustomer

	if err := s.staff.DeleteByAccountID(ctx, accountID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, util.MapError(err)
	}

	s.audit.Record(ctx, actor.ID, domain.AuditActionDemoteUser, "account", accountID, map[string]any{
		"from": previous,
		"to":   domain.RoleCustomer,
	})
	return account, nil
}

// ToggleStatus flips the account's active flag. Deactivation revokes every
// session the subject holds so access ends immediately.
func (s *AccountService) ToggleStatus(ctx context.Context, actor *domain.Account, accountID string) (*domain.Account, error) {
	if !authz.Can(actor, authz.ActionToggleUserStatus) {
		return nil, accessDenied(actor)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("account", map[string]any{"id": accountID})
		}
		return nil, util.MapError(err)
	}

	next := !account.IsActive
	if err := s.accounts.SetActive(ctx, accountID, next); err != nil {
		return nil, util.MapError(err)
	}
	account.IsActive = next

	if !next {
		if err := s.provider.RevokeSessions(ctx, accountID); err != nil {
			s.logger.Error("session revocation on deactivate failed", zap.String("account_id", accountID), zap.Error(err))
		}
	}

	s.audit.Record(ctx, actor.ID, domain.AuditActionToggleUserStatus, "account", accountID, map[string]any{
		"is_active": next,
	})
	return account, nil
}

// Delete removes the account, its staff record and its credentials.
func (s *AccountService) Delete(ctx context.Context, actor *domain.Account, accountID string) error {
	if !authz.Can(actor, authz.ActionDeleteUser) {
		return accessDenied(actor)
	}

	if err := s.staff.DeleteByAccountID(ctx, accountID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return util.MapError(err)
	}
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("account", map[string]any{"id": accountID})
		}
		return util.MapError(err)
	}
	if err := s.provider.DeleteUser(ctx, accountID); err != nil {
		s.logger.Error("credential cleanup on delete failed", zap.String("account_id", accountID), zap.Error(err))
	}

	s.audit.Record(ctx, actor.ID, domain.AuditActionDeleteUser, "account", accountID, nil)
	return nil
}

// UpdateProfile lets an account edit its own name and phone. Not audited:
// the activity log tracks privileged operations only.
func (s *AccountService) UpdateProfile(ctx context.Context, account *domain.Account, fullName, phone string) (*domain.Account, error) {
	if account == nil {
		return nil, util.NewSessionInvalid("")
	}
	if fullName != "" {
		account.FullName = fullName
	}
	if phone != "" {
		account.Phone = phone
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, util.MapError(err)
	}
	return account, nil
}

func accessDenied(actor *domain.Account) error {
	redirect := authz.RedirectAdminLogin
	if actor != nil {
		if actor.Role.IsAdminTier() {
			redirect = authz.RedirectAdminHome
		} else {
			redirect = authz.RedirectHome
		}
	}
	return util.NewAccessDenied(redirect, map[string]any{
		"required_roles": []domain.Role{domain.RoleChiefAdmin},
	})
}
