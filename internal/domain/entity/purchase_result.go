package entity

type PurchaseOutcome string

const (
	PurchaseSuccess       PurchaseOutcome = "success"
	PurchaseUserCancelled PurchaseOutcome = "user_cancelled"
	PurchasePending       PurchaseOutcome = "pending"
	PurchaseFailed        PurchaseOutcome = "failed"
)

// fallbackFailureMessage is shown when the store reports a failure
// without a reason.
const fallbackFailureMessage = "Purchase failed"

// PurchaseResult is the outcome of a single purchase call. It is consumed
// once by the initiating action and discarded.
type PurchaseResult struct {
	Outcome PurchaseOutcome
	Err     error
}

// FailureMessage returns the user-facing description of a failed result.
func (r PurchaseResult) FailureMessage() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return fallbackFailureMessage
}
