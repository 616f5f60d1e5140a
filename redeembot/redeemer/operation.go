package redeemer

import (
	"strconv"
	"time"
)

type OperationKind string

const (
	KindRedeem  OperationKind = "redeem"
	KindCheckIn OperationKind = "check-in"
)

// Operation is what a batch does for every account.
type Operation struct {
	Kind       OperationKind
	Code       string
	ActivityID int
}

func Redeem(code string) Operation {
	return Operation{Kind: KindRedeem, Code: code}
}

func CheckIn(activityID int) Operation {
	return Operation{Kind: KindCheckIn, ActivityID: activityID}
}

// Target is the gift code or the activity id as text.
func (op Operation) Target() string {
	if op.Kind == KindCheckIn {
		return strconv.Itoa(op.ActivityID)
	}
	return op.Code
}

// OutcomeRecord is produced once per account per batch.
type OutcomeRecord struct {
	AccountID string
	Kind      OperationKind
	Target    string
	Succeeded bool
	Reason    string
	Timestamp time.Time
}
