package domain

import "time"

// Company represents an isolated tenant owning accounts, ledger entries, journals, etc.
// No computation in the engine ever crosses a company boundary.
type Company struct {
	CompanyID   string `json:"companyID"`   // Primary Key (e.g., UUID)
	Name        string `json:"name"`        // User-defined name for the company
	Description string `json:"description"` // Optional description
	IsActive    bool   `json:"isActive"`    // Indicates whether the company is active or disabled
	AuditFields        // Embed common audit fields
}

// UserCompanyRole defines the possible roles a user can have within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READONLY" // Users with read-only access to company data
	RoleRemoved  UserCompanyRole = "REMOVED"  // For users who have been removed from the company
)

// UserCompany represents the membership of a User in a Company.
type UserCompany struct {
	UserID    string          `json:"userID"`    // FK -> users.user_id
	CompanyID string          `json:"companyID"` // FK -> companies.company_id
	Role      UserCompanyRole `json:"role"`      // Role of the user in this specific company
	JoinedAt  time.Time       `json:"joinedAt"`  // Timestamp when the user joined the company
}
