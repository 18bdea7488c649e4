package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/identity"
	"github.com/glowmart/storefront-service/internal/repository"
)

type fakeProvider struct {
	users         map[string]*identity.User // keyed by email
	signInErr     error
	signUpErr     error
	signedOut     []string
	revokedUsers  []string
	deletedUsers  []string
	signUpCalled  bool
	pendingSignup bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{users: make(map[string]*identity.User)}
}

func (p *fakeProvider) addUser(id, email string) {
	p.users[email] = &identity.User{ID: id, Email: email, EmailConfirmed: true}
}

func (p *fakeProvider) session() *identity.Session {
	return &identity.Session{Token: "tok-" + strconv.Itoa(len(p.signedOut)), ExpiresAt: time.Now().Add(time.Hour)}
}

func (p *fakeProvider) SignInWithPassword(ctx context.Context, email, password string) (*identity.User, *identity.Session, error) {
	if p.signInErr != nil {
		return nil, nil, p.signInErr
	}
	user, ok := p.users[email]
	if !ok {
		return nil, nil, errors.New("invalid login credentials")
	}
	return user, p.session(), nil
}

func (p *fakeProvider) SignUp(ctx context.Context, email, password string, meta identity.SignupMetadata) (*identity.User, *identity.Session, error) {
	p.signUpCalled = true
	if p.signUpErr != nil {
		return nil, nil, p.signUpErr
	}
	if _, ok := p.users[email]; ok {
		return nil, nil, errors.New("user already registered")
	}
	user := &identity.User{ID: "id-" + email, Email: email}
	p.users[email] = user
	if p.pendingSignup {
		return user, nil, nil
	}
	user.EmailConfirmed = true
	return user, p.session(), nil
}

func (p *fakeProvider) VerifyOtp(ctx context.Context, tokenHash string, otpType identity.OtpType) (*identity.User, *identity.Session, error) {
	if tokenHash != "valid-token" {
		return nil, nil, errors.New("token expired or invalid")
	}
	for _, user := range p.users {
		user.EmailConfirmed = true
		return user, p.session(), nil
	}
	return nil, nil, errors.New("token expired or invalid")
}

func (p *fakeProvider) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	return nil
}

func (p *fakeProvider) UpdatePassword(ctx context.Context, sessionToken, newPassword string) error {
	return nil
}

func (p *fakeProvider) SignOut(ctx context.Context, sessionToken string) error {
	p.signedOut = append(p.signedOut, sessionToken)
	return nil
}

func (p *fakeProvider) GetUser(ctx context.Context, sessionToken string) (*identity.User, error) {
	if sessionToken == "" {
		return nil, errors.New("session invalid or signed out")
	}
	for _, user := range p.users {
		return user, nil
	}
	return nil, errors.New("session invalid or signed out")
}

func (p *fakeProvider) RevokeSessions(ctx context.Context, userID string) error {
	p.revokedUsers = append(p.revokedUsers, userID)
	return nil
}

func (p *fakeProvider) DeleteUser(ctx context.Context, userID string) error {
	p.deletedUsers = append(p.deletedUsers, userID)
	return nil
}

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *fakeAccountRepo) add(account *domain.Account) {
	copied := *account
	r.accounts[account.ID] = &copied
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.Role = role
	return nil
}

func (r *fakeAccountRepo) SetActive(ctx context.Context, id string, active bool) error {
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.IsActive = active
	return nil
}

func (r *fakeAccountRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.accounts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) List(ctx context.Context, filter repository.AccountFilter) ([]domain.Account, error) {
	var result []domain.Account
	for _, account := range r.accounts {
		if filter.Role != nil && account.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && account.IsActive != *filter.Active {
			continue
		}
		result = append(result, *account)
	}
	return result, nil
}

func (r *fakeAccountRepo) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	counts := make(map[domain.Role]int64)
	for _, account := range r.accounts {
		counts[account.Role]++
	}
	return counts, nil
}

type fakeStaffRepo struct {
	staff      map[string]*domain.StaffProfile // keyed by account id
	lastLogins map[string]int
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[string]*domain.StaffProfile), lastLogins: make(map[string]int)}
}

func (r *fakeStaffRepo) Create(ctx context.Context, staff *domain.StaffProfile) error {
	if _, ok := r.staff[staff.AccountID]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	copied := *staff
	r.staff[staff.AccountID] = &copied
	return nil
}

func (r *fakeStaffRepo) GetByAccountID(ctx context.Context, accountID string) (*domain.StaffProfile, error) {
	staff, ok := r.staff[accountID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *staff
	return &copied, nil
}

func (r *fakeStaffRepo) DeleteByAccountID(ctx context.Context, accountID string) error {
	if _, ok := r.staff[accountID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.staff, accountID)
	return nil
}

func (r *fakeStaffRepo) TouchLastLogin(ctx context.Context, accountID string) error {
	if _, ok := r.staff[accountID]; !ok {
		return pgx.ErrNoRows
	}
	r.lastLogins[accountID]++
	return nil
}

type fakeAuditRepo struct {
	entries []domain.AuditEntry
	failure error
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	if r.failure != nil {
		return r.failure
	}
	entry.ID = "audit-" + strconv.Itoa(len(r.entries)+1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, filter repository.AuditFilter) ([]domain.AuditEntry, error) {
	var result []domain.AuditEntry
	for _, entry := range r.entries {
		if filter.ActorID != nil && entry.ActorID != *filter.ActorID {
			continue
		}
		if filter.Action != nil && entry.Action != *filter.Action {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (r *fakeAuditRepo) lastAction() domain.AuditAction {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].Action
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) add(order *domain.Order) {
	copied := *order
	r.orders[order.ID] = &copied
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		result = append(result, *order)
	}
	return result, nil
}

func (r *fakeOrderRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range r.orders {
		if order.AccountID == accountID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	counts := make(map[domain.OrderStatus]int64)
	for _, order := range r.orders {
		counts[order.Status]++
	}
	return counts, nil
}

func (r *fakeOrderRepo) SalesTotals(ctx context.Context) (*repository.SalesTotals, error) {
	totals := &repository.SalesTotals{}
	for _, order := range r.orders {
		totals.OrderCount++
		if order.Status != domain.OrderStatusPending && order.Status != domain.OrderStatusCancelled {
			totals.RevenueCents += order.TotalCents
		}
		if order.Status == domain.OrderStatusDelivered {
			totals.DeliveredOnly++
		}
	}
	return totals, nil
}
