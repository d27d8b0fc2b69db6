package model

const (
	RoleAdmin  = "ADMIN"
	RoleCSM    = "CSM"
	RoleViewer = "VIEWER"
)

// Scope identifies the authenticated caller for an operation.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // ADMIN, CSM, or VIEWER
	JTI      string `json:"jti"`
}

// IsAdmin checks if the scope has admin role
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// IsCSM checks if the scope has customer success manager role
func (s Scope) IsCSM() bool {
	return s.Role == RoleCSM
}

// IsViewer checks if the scope has viewer role
func (s Scope) IsViewer() bool {
	return s.Role == RoleViewer
}
