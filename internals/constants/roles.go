package constants

// Role pengguna
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Key c.Locals yang diisi AuthMiddleware (HARUS seragam)
const (
	LocalUserID   = "user_id"
	LocalUserRole = "userRole"
	LocalUserName = "userName"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleEmployee,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
