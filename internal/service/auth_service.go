package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/config"
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/identity"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/pkg/util"
)

const minPasswordLength = 8

// Audience identifies which surface a login serves. The admin console and the
// shop run the same funnel with a different role floor and redirect targets.
type Audience struct {
	Name          string
	MinimumRole   domain.Role
	LoginRedirect string
}

var (
	// AudienceShop admits any account.
	AudienceShop = Audience{Name: "shop", MinimumRole: domain.RoleCustomer, LoginRedirect: authz.RedirectShopLogin}
	// AudienceAdmin admits agent and above.
	AudienceAdmin = Audience{Name: "admin", MinimumRole: domain.RoleAgent, LoginRedirect: authz.RedirectAdminLogin}
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Account *domain.Account
	Session *identity.Session
}

// SignupResult is returned after registration. Session is nil when the
// account still needs email confirmation.
type SignupResult struct {
	Account              *domain.Account
	Session              *identity.Session
	RequiresConfirmation bool
	Email                string
}

// AuthService owns the authentication lifecycle for both audiences.
type AuthService struct {
	provider identity.Provider
	accounts repository.AccountRepository
	staff    repository.StaffRepository
	audit    *AuditService
	validate *validator.Validate
	site     config.SiteConfig
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(
	provider identity.Provider,
	accounts repository.AccountRepository,
	staff repository.StaffRepository,
	audit *AuditService,
	site config.SiteConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		provider: provider,
		accounts: accounts,
		staff:    staff,
		audit:    audit,
		validate: validator.New(),
		site:     site,
		logger:   logger,
	}
}

// Login authenticates credentials for the given audience. A session issued to
// an account below the audience's role floor, or to a deactivated account, is
// revoked before the error is returned so no usable token leaks from a failed
// login.
func (s *AuthService) Login(ctx context.Context, audience Audience, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, util.NewInvalidCredentials("email and password are required")
	}

	user, session, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, identity.TranslateError(err)
	}

	account, err := s.accounts.GetByID(ctx, user.ID)
	if err != nil {
		s.signOutQuietly(ctx, session)
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error("authenticated identity has no account record", zap.String("identity_id", user.ID))
			return nil, util.NewUnknown(err)
		}
		return nil, util.MapError(err)
	}

	if !account.Role.AtLeast(audience.MinimumRole) {
		s.signOutQuietly(ctx, session)
		return nil, util.NewUnauthorizedRole(audience.LoginRedirect)
	}

	if !account.IsActive {
		s.signOutQuietly(ctx, session)
		return nil, util.NewAccountInactive(audience.LoginRedirect)
	}

	if account.Role.IsAdminTier() {
		if err := s.staff.TouchLastLogin(ctx, account.ID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("last-login update failed", zap.String("account_id", account.ID), zap.Error(err))
		}
		s.audit.Record(ctx, account.ID, domain.AuditActionLogin, "account", account.ID, map[string]any{
			"audience": audience.Name,
		})
	}

	return &LoginResult{Account: account, Session: session}, nil
}

// Signup registers a new customer account. Registration never grants a
// privileged role regardless of request contents.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName, phone string) (*SignupResult, error) {
	if email == "" || password == "" || fullName == "" {
		return nil, util.NewInvalidCredentials("all fields are required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, util.NewInvalidCredentials("a valid email address is required")
	}
	if len(password) < minPasswordLength {
		return nil, util.NewInvalidCredentials("password must be at least 8 characters")
	}
	if utf8.RuneCountInString(fullName) < 2 {
		return nil, util.NewInvalidCredentials("full name must be at least 2 characters")
	}

	user, session, err := s.provider.SignUp(ctx, email, password, identity.SignupMetadata{
		FullName:   fullName,
		Phone:      phone,
		Role:       string(domain.RoleCustomer),
		RedirectTo: s.site.BaseURL + "/confirm",
	})
	if err != nil {
		return nil, identity.TranslateError(err)
	}

	account := &domain.Account{
		ID:       user.ID,
		Email:    user.Email,
		FullName: fullName,
		Phone:    phone,
		Role:     domain.RoleCustomer,
		IsActive: session != nil,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		s.signOutQuietly(ctx, session)
		return nil, util.MapError(err)
	}

	return &SignupResult{
		Account:              account,
		Session:              session,
		RequiresConfirmation: session == nil,
		Email:                user.Email,
	}, nil
}

// VerifyEmail redeems a confirmation link and activates the account.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenHash string) (*LoginResult, error) {
	if tokenHash == "" {
		return nil, util.NewAccountNotConfirmed("confirmation link is invalid or has expired")
	}

	user, session, err := s.provider.VerifyOtp(ctx, tokenHash, identity.OtpTypeSignup)
	if err != nil {
		return nil, util.NewAccountNotConfirmed("confirmation link is invalid or has expired")
	}

	if err := s.accounts.SetActive(ctx, user.ID, true); err != nil {
		s.signOutQuietly(ctx, session)
		return nil, util.MapError(err)
	}

	account, err := s.accounts.GetByID(ctx, user.ID)
	if err != nil {
		s.signOutQuietly(ctx, session)
		return nil, util.MapError(err)
	}

	return &LoginResult{Account: account, Session: session}, nil
}

// SendPasswordResetEmail starts account recovery. Success is reported even
// when the address is unknown.
func (s *AuthService) SendPasswordResetEmail(ctx context.Context, email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return util.NewInvalidCredentials("a valid email address is required")
	}
	if err := s.provider.ResetPasswordForEmail(ctx, email, s.site.BaseURL+"/reset-password"); err != nil {
		return identity.TranslateError(err)
	}
	return nil
}

// ResetPassword completes account recovery with a fresh password.
func (s *AuthService) ResetPassword(ctx context.Context, tokenHash, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return util.NewInvalidCredentials("passwords do not match")
	}
	if len(newPassword) < minPasswordLength {
		return util.NewInvalidCredentials("password must be at least 8 characters")
	}

	_, session, err := s.provider.VerifyOtp(ctx, tokenHash, identity.OtpTypeRecovery)
	if err != nil {
		return util.NewPasswordResetFailed("reset link is invalid or has expired")
	}

	if err := s.provider.UpdatePassword(ctx, session.Token, newPassword); err != nil {
		s.signOutQuietly(ctx, session)
		return identity.TranslateError(err)
	}

	// The recovery session exists only to authorize the password change.
	s.signOutQuietly(ctx, session)
	return nil
}

// SignOut ends the session. Signing out an unknown session succeeds.
func (s *AuthService) SignOut(ctx context.Context, sessionToken string) error {
	if err := s.provider.SignOut(ctx, sessionToken); err != nil {
		return util.NewLogoutFailed(err)
	}
	return nil
}

// GetCurrentUser resolves the session to its account record.
func (s *AuthService) GetCurrentUser(ctx context.Context, sessionToken string) (*domain.Account, error) {
	user, err := s.provider.GetUser(ctx, sessionToken)
	if err != nil {
		return nil, identity.TranslateError(err)
	}

	account, err := s.accounts.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewProfileNotFound("")
		}
		return nil, util.MapError(err)
	}
	return account, nil
}

func (s *AuthService) signOutQuietly(ctx context.Context, session *identity.Session) {
	if session == nil {
		return
	}
	if err := s.provider.SignOut(ctx, session.Token); err != nil {
		s.logger.Warn("session revocation failed", zap.Error(err))
	}
}
