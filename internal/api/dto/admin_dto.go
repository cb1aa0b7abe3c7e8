package dto

// AssignRoleRequest payload for role assignment.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user seller admin superadmin"`
}

// Pagination is the shared paging envelope.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// UserStatsResponse is the admin dashboard user breakdown.
type UserStatsResponse struct {
	Total       int64 `json:"total"`
	Regular     int64 `json:"regular"`
	Sellers     int64 `json:"sellers"`
	Admins      int64 `json:"admins"`
	SuperAdmins int64 `json:"superadmins"`
	Recent      int64 `json:"recent"`
}
