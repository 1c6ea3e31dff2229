package match

// Scoring weights
const (
	BaseScore        = 50
	InterestWeight   = 15
	LocationBonus    = 20
	CloseAgeBonus    = 15
	NearAgeBonus     = 5
	AgePenaltyWeight = 2
	OnlineBonus      = 10
	PremiumBonus     = 5
)

// Age gap thresholds in years
const (
	CloseAgeGap = 3
	NearAgeGap  = 7
)

// Score bounds
const (
	MinScore = 0
	MaxScore = 99
)
