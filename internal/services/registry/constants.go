package registry

// Product prices in TZS
const (
	PriceMonthly      = 25000
	PriceWeeklyPass   = 5000
	PricePerMinute    = 500
	PriceProfileBoost = 3000
)

// ExtensionMinutes is the call time a minutes purchase buys. It matches
// the hour of allowance the entitlement extension grants on approval.
const ExtensionMinutes = 60

// DefaultTrialCalls is the trial counter value restored by a refill.
const DefaultTrialCalls = 3
