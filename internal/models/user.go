package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription tiers
type UserTier string

const (
	TierFree    UserTier = "FREE"
	TierPremium UserTier = "PREMIUM"
)

// Account roles
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// Identity verification states
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "UNVERIFIED"
	VerificationPending    VerificationStatus = "PENDING"
	VerificationVerified   VerificationStatus = "VERIFIED"
	VerificationRejected   VerificationStatus = "REJECTED"
)

type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null" json:"-"`
	Name                string `gorm:"not null"`
	Phone               string `gorm:"uniqueIndex;not null"`
	Age                 int    `gorm:"not null"`
	Bio                 string
	Location            string
	Photo               string
	Interests           StringList         `gorm:"type:jsonb"`
	IsOnline            bool               `gorm:"default:false"`
	Tier                UserTier           `gorm:"default:'FREE'"`
	Role                UserRole           `gorm:"default:'USER'"`
	Points              int                `gorm:"default:0"`
	TrialCallsRemaining int                `gorm:"default:3"`
	Blocked             bool               `gorm:"default:false"`
	VerificationStatus  VerificationStatus `gorm:"default:'UNVERIFIED'"`
	TokenVersion        int                `gorm:"default:1"`
	LastLoginAt         time.Time
}

// IsPrivileged reports whether the user is exempt from call-time limits.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Tier == TierPremium
}

// HasTrialCalls reports whether a FREE user still has trial calls left.
func (u *User) HasTrialCalls() bool {
	return u.Tier == TierFree && u.TrialCallsRemaining > 0
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}
