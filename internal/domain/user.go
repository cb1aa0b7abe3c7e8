package domain

import "time"

// Role is the capability tier assigned to a user account.
type Role string

const (
	RoleUser       Role = "user"
	RoleSeller     Role = "seller"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// sellerTier, adminTier and superAdminTier are the closed predicate tables
// for the three role-gated policies. Membership, not ordering, decides access.
var (
	sellerTier     = map[Role]struct{}{RoleSeller: {}, RoleAdmin: {}, RoleSuperAdmin: {}}
	adminTier      = map[Role]struct{}{RoleAdmin: {}, RoleSuperAdmin: {}}
	superAdminTier = map[Role]struct{}{RoleSuperAdmin: {}}
)

// Valid reports whether the role is one of the four known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanSell reports whether the role satisfies the seller policy.
func (r Role) CanSell() bool {
	_, ok := sellerTier[r]
	return ok
}

// CanAdminister reports whether the role satisfies the admin policy.
func (r Role) CanAdminister() bool {
	_, ok := adminTier[r]
	return ok
}

// IsSuperAdmin reports whether the role satisfies the superadmin policy.
func (r Role) IsSuperAdmin() bool {
	_, ok := superAdminTier[r]
	return ok
}

// User is the domain model for an account. Role is mutable after token
// issuance; authorization must read it from storage, not from token claims.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	ImageURL     *string
	MobileNumber *string
	Address      *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
