package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrRaceNotFound         = errors.New("race not found")
	ErrRewardNotFound       = errors.New("reward not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrUnknownScope         = errors.New("unknown leaderboard scope")
	ErrScreenInactive       = errors.New("screen is not active in this session")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInternalError        = errors.New("internal server error")
)

// ValidationError is a user-input problem surfaced as a transient notice.
// It never represents a system fault.
type ValidationError struct {
	MessageID string
	Message   string
	Data      map[string]any
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation errors
var (
	ErrSelectPrediction       = &ValidationError{MessageID: "SelectPredictionFirst", Message: "please select a prediction first"}
	ErrSelectHorse            = &ValidationError{MessageID: "SelectHorseFirst", Message: "please select a horse to predict"}
	ErrSelectAnswer           = &ValidationError{MessageID: "SelectAnswerFirst", Message: "please select an answer"}
	ErrPredictionLocked       = &ValidationError{MessageID: "PredictionLocked", Message: "prediction is locked until the round resets"}
	ErrUnknownOption          = &ValidationError{MessageID: "UnknownOption", Message: "unknown prediction option"}
	ErrInvalidPhone           = &ValidationError{MessageID: "InvalidPhone", Message: "please enter a valid phone number"}
	ErrTermsNotAccepted       = &ValidationError{MessageID: "TermsNotAccepted", Message: "please agree to the terms and conditions"}
	ErrInvalidOTP             = &ValidationError{MessageID: "InvalidOTP", Message: "please enter a valid OTP"}
	ErrRequestInFlight        = &ValidationError{MessageID: "RequestInFlight", Message: "please wait for the current request to finish"}
	ErrNameRequired           = &ValidationError{MessageID: "NameRequired", Message: "please enter your name"}
	ErrUnknownSport           = &ValidationError{MessageID: "UnknownSport", Message: "unknown favorite sport"}
	ErrEmptySupportMessage    = &ValidationError{MessageID: "EmptySupportMessage", Message: "please enter a message"}
	ErrInsufficientPoints     = &ValidationError{MessageID: "InsufficientPoints", Message: "not enough points to claim this reward"}
	ErrNoRewardSelected       = &ValidationError{MessageID: "NoRewardSelected", Message: "no reward selected"}
	ErrRewardUnavailable      = &ValidationError{MessageID: "RewardUnavailable", Message: "reward is not available yet"}
	ErrUnknownSetting         = &ValidationError{MessageID: "UnknownSetting", Message: "unknown setting"}
	ErrInvalidSettingValue    = &ValidationError{MessageID: "InvalidSettingValue", Message: "invalid value for setting"}
	ErrAccountDeletionBlocked = &ValidationError{MessageID: "AccountDeletionDisabled", Message: "account deletion is disabled in demo mode"}
	ErrUnknownPeriod          = &ValidationError{MessageID: "UnknownPeriod", Message: "unknown stats period"}
	ErrUnknownTab             = &ValidationError{MessageID: "UnknownTab", Message: "unknown tab"}
)

// IsNotFoundError checks if an error is a not-found type error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrRaceNotFound) ||
		errors.Is(err, ErrRewardNotFound) ||
		errors.Is(err, ErrNotificationNotFound) ||
		errors.Is(err, ErrMatchNotFound)
}

// IsValidationError reports whether err is a user-input validation failure.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// AsValidationError extracts the validation error from err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
