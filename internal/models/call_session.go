package models

import (
	"time"
)

// Call session kinds
type CallKind string

const (
	CallKindTrial   CallKind = "TRIAL"
	CallKindPaid    CallKind = "PAID"
	CallKindPremium CallKind = "PREMIUM"
)

// Call session statuses
type CallStatus string

const (
	CallStatusOngoing CallStatus = "ONGOING"
	CallStatusEnded   CallStatus = "ENDED"
)

// CallSession is the persisted audit record of a video call. The live
// elapsed/ceiling state of an ongoing call is owned by the entitlement
// service; only the final duration is written back here.
type CallSession struct {
	ID         string     `gorm:"primarykey"`
	CallerID   uint       `gorm:"not null;index"`
	ReceiverID uint       `gorm:"not null;index"`
	Duration   int        `gorm:"default:0"` // seconds
	Kind       CallKind   `gorm:"not null"`
	Status     CallStatus `gorm:"not null;default:'ONGOING'"`
	StartedAt  time.Time
	EndedAt    *time.Time
}
