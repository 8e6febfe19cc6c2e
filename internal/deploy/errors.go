package deploy

import (
	"errors"
	"strings"
)

// Failure taxonomy. These are the only classifications surfaced to users;
// the raw provider error stays attached via wrapping for diagnostics.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrNetworkMisconfigured = errors.New("network misconfigured")
	ErrReadback             = errors.New("deployed contract could not be read back")
	ErrPersistence          = errors.New("deployment record could not be persisted")
)

// Reason names the terminal failure classification of a deployment attempt.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonInsufficientFunds  Reason = "InsufficientFunds"
	ReasonNetworkMisconfig   Reason = "NetworkMisconfigured"
	ReasonReadbackFailure    Reason = "ReadbackFailure"
	ReasonPersistenceFailure Reason = "PersistenceFailure"
	ReasonUnknown            Reason = "Unknown"
)

// ClassifySubmitError maps a raw provider rejection to a user-facing reason.
func ClassifySubmitError(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return ReasonInsufficientFunds
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "network"),
		strings.Contains(msg, "timeout"):
		return ReasonNetworkMisconfig
	default:
		return ReasonUnknown
	}
}
