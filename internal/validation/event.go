package validation

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEventNotFound     = errors.New("validation event not found")
	ErrInvalidUserAction = errors.New("invalid user action")
)

type UserAction string

const (
	UserActionConfirmed UserAction = "confirmed"
	UserActionCorrected UserAction = "corrected"
	UserActionDismissed UserAction = "dismissed"
)

func (a UserAction) Valid() bool {
	switch a {
	case UserActionConfirmed, UserActionCorrected, UserActionDismissed:
		return true
	default:
		return false
	}
}

// Event is the audit row written for every classified set.
type Event struct {
	ID          int              `json:"id"`
	UserID      int              `json:"userId"`
	SetID       *int             `json:"setId,omitempty"`
	ExerciseID  int              `json:"exerciseId"`
	InputWeight decimal.Decimal  `json:"inputWeight"`
	ExpectedMax *decimal.Decimal `json:"expectedMax,omitempty"`
	RecentAvg   *decimal.Decimal `json:"recentAvg,omitempty"`
	FlaggedAs   Status           `json:"flaggedAs"`
	UserAction  *UserAction      `json:"userAction,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type PersonalBest struct {
	ID         int              `json:"id"`
	UserID     int              `json:"userId"`
	ExerciseID int              `json:"exerciseId"`
	SetID      *int             `json:"setId,omitempty"`
	PRType     string           `json:"prType"`
	Weight     decimal.Decimal  `json:"weight"`
	Reps       int              `json:"reps"`
	PBDate     time.Time        `json:"pbDate"`
	PreviousPR *decimal.Decimal `json:"previousPr,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

const PRTypeMaxWeight = "max_weight"

type EventsParams struct {
	UserID     int
	ExerciseID int
	Status     Status
	OnlyOpen   bool
	Limit      int
}
