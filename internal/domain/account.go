package domain

import "time"

// Role enumerates account privilege tiers, ordered from least to most privileged.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAgent      Role = "agent"
	RoleAdmin      Role = "admin"
	RoleChiefAdmin Role = "chief_admin"
)

var roleRanks = map[Role]int{
	RoleCustomer:   0,
	RoleAgent:      1,
	RoleAdmin:      2,
	RoleChiefAdmin: 3,
}

// Rank returns the role's position in the privilege order. Unknown roles rank
// below customer so they never satisfy any requirement.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether the role meets the required tier.
func (r Role) AtLeast(required Role) bool {
	return r.Rank() >= required.Rank()
}

// IsAdminTier reports whether the role grants admin-console access.
func (r Role) IsAdminTier() bool {
	return r.AtLeast(RoleAgent)
}

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Account is the persisted identity behind every request.
type Account struct {
	ID        string
	Email     string
	FullName  string
	Phone     string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
