// Package validation rejects unrecognized enum values at the boundary so
// they never propagate into the core services.
package validation

import "edcall/internal/models"

// ValidTransactionType reports whether t is one of the closed transaction types.
func ValidTransactionType(t models.TransactionType) bool {
	switch t {
	case models.TransactionTypeSubscription,
		models.TransactionTypeWeeklyPass,
		models.TransactionTypeWithdrawal,
		models.TransactionTypePointsConversion,
		models.TransactionTypeMinutesPurchase,
		models.TransactionTypeProfileBoost:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s is one of the closed transaction statuses.
func ValidTransactionStatus(s models.TransactionStatus) bool {
	switch s {
	case models.TransactionStatusPending,
		models.TransactionStatusCompleted,
		models.TransactionStatusFailed,
		models.TransactionStatusRejected:
		return true
	}
	return false
}

// ValidVerificationStatus reports whether s is one of the verification states.
func ValidVerificationStatus(s models.VerificationStatus) bool {
	switch s {
	case models.VerificationUnverified,
		models.VerificationPending,
		models.VerificationVerified,
		models.VerificationRejected:
		return true
	}
	return false
}
