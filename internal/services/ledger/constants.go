package ledger

// EarnEvent is a closed set of point-earning activities. Credits only ever
// happen through one of these, each backed by a completed transaction
// record; there is no unconditional credit operation.
type EarnEvent string

const (
	EarnDailyLogin      EarnEvent = "DAILY_LOGIN"
	EarnCompleteProfile EarnEvent = "COMPLETE_PROFILE"
	EarnCompletedCall   EarnEvent = "COMPLETED_CALL"
	EarnSuccessfulMatch EarnEvent = "SUCCESSFUL_MATCH"
	EarnReferral        EarnEvent = "REFERRAL"
	EarnContentCreation EarnEvent = "CONTENT_CREATION"
)

// Points credited per earning event
var earnRates = map[EarnEvent]int{
	EarnDailyLogin:      50,
	EarnCompleteProfile: 500,
	EarnCompletedCall:   200,
	EarnSuccessfulMatch: 100,
	EarnReferral:        1000,
	EarnContentCreation: 300,
}

// Rate returns the points credited for an earning event.
func Rate(event EarnEvent) (int, bool) {
	rate, ok := earnRates[event]
	return rate, ok
}
