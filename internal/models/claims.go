package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// User permissions
	PermissionDiscoveryRead    = "discovery:read"
	PermissionCallWrite        = "call:write"
	PermissionPointsRead       = "points:read"
	PermissionPointsWrite      = "points:write"
	PermissionTransactionRead  = "transaction:read"
	PermissionTransactionWrite = "transaction:write"
	PermissionFeedRead         = "feed:read"
	PermissionFeedWrite        = "feed:write"
	PermissionMessageRead      = "message:read"
	PermissionMessageWrite     = "message:write"
	PermissionChangePassword   = "user:change-password"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role UserRole) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionDiscoveryRead,
			PermissionCallWrite,
			PermissionPointsRead,
			PermissionPointsWrite,
			PermissionTransactionRead,
			PermissionTransactionWrite,
			PermissionFeedRead,
			PermissionFeedWrite,
			PermissionMessageRead,
			PermissionMessageWrite,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleUser:
		return []string{
			PermissionDiscoveryRead,
			PermissionCallWrite,
			PermissionPointsRead,
			PermissionPointsWrite,
			PermissionTransactionRead,
			PermissionTransactionWrite,
			PermissionFeedRead,
			PermissionFeedWrite,
			PermissionMessageRead,
			PermissionMessageWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
