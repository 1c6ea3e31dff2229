package entitlement

import "time"

// Call-time ceilings in seconds
const (
	// UnlimitedCeiling is the 24-hour session cap applied to ADMIN and
	// PREMIUM callers instead of a true unlimited allowance.
	UnlimitedCeiling = 86400

	// TrialCeiling is the allowance for a FREE caller with trial calls left.
	TrialCeiling = 3600

	// LockedCeiling expires a FREE caller with no trials almost immediately,
	// forcing the paywall prompt.
	LockedCeiling = 1
)

// Points redemption
const (
	RedeemMinutes    = 10
	PointsPerMinute  = 500
	RedeemPointsCost = RedeemMinutes * PointsPerMinute
)

// PaidExtensionSeconds is the fresh allowance granted when a manual payment
// is approved mid-call. Unlike points redemption it also resets elapsed time.
const PaidExtensionSeconds = 3600

// RedeemReference marks MINUTES_PURCHASE transactions redeemed during a call.
const RedeemReference = "IN_CALL_REDEEM"

// DefaultTickInterval is the scheduler period driving Advance.
const DefaultTickInterval = time.Second
