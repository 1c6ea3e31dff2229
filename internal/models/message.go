package models

import (
	"time"
)

// Message channels
type MessageChannel string

const (
	// ChannelDirect is user-to-user chat.
	ChannelDirect MessageChannel = "DIRECT"
	// ChannelSupport is the support thread between a user and the admin
	// account.
	ChannelSupport MessageChannel = "SUPPORT"
)

// Message is a single direct or support chat message.
type Message struct {
	ID         string         `gorm:"primarykey"`
	SenderID   uint           `gorm:"not null;index"`
	ReceiverID uint           `gorm:"not null;index"`
	Channel    MessageChannel `gorm:"not null;default:'DIRECT'"`
	Body       string         `gorm:"not null"`
	IsRead     bool           `gorm:"default:false"`
	CreatedAt  time.Time
}
