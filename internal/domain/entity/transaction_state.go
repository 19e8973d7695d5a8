package entity

type TransactionPhase string

const (
	TransactionPending   TransactionPhase = "pending"
	TransactionPurchased TransactionPhase = "purchased"
	TransactionRestored  TransactionPhase = "restored"
	TransactionDeferred  TransactionPhase = "deferred"
	TransactionFailed    TransactionPhase = "failed"
)

// TransactionState is the last known outcome of a purchase or restore
// attempt as published by the store. It is absent until a first attempt.
type TransactionState struct {
	Phase TransactionPhase
	Err   error
}

// Settled returns true once the transaction reached a final phase.
func (s TransactionState) Settled() bool {
	switch s.Phase {
	case TransactionPurchased, TransactionRestored, TransactionFailed:
		return true
	default:
		return false
	}
}

// Granted returns true if the transaction unlocked the entitlement.
func (s TransactionState) Granted() bool {
	return s.Phase == TransactionPurchased || s.Phase == TransactionRestored
}
