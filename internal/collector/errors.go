package collector

import (
	"errors"
	"fmt"
)

// Phase names the network step a failure happened in.
type Phase string

const (
	PhaseNone    Phase = ""
	PhaseRefresh Phase = "refresh"
	PhaseRead    Phase = "read"
	PhaseHealth  Phase = "health"
)

// Kind is the failure class surfaced to callers.
type Kind string

const (
	KindNone              Kind = ""
	KindValidation        Kind = "VALIDATION"
	KindRemoteRejection   Kind = "REMOTE_REJECTION"
	KindConnectivity      Kind = "CONNECTIVITY"
	KindMalformedResponse Kind = "MALFORMED_RESPONSE"
	KindUnknown           Kind = "UNKNOWN"
)

// Caller-facing messages.
const (
	MsgEmptySymbol = "please enter a stock symbol"
	MsgFetchFailed = "failed to fetch stock data"
	MsgNetwork     = "network error, check backend availability"
)

// ValidationError rejects input locally; it never reaches the network.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string      { return MsgEmptySymbol }
func (e *ValidationError) FailedPhase() Phase { return PhaseNone }

// RemoteRejectionError means the backend answered with a non-2xx status.
// Message is the backend's detail, or MsgFetchFailed when it supplied none.
type RemoteRejectionError struct {
	Phase      Phase
	StatusCode int
	Message    string
}

func (e *RemoteRejectionError) Error() string      { return e.Message }
func (e *RemoteRejectionError) FailedPhase() Phase { return e.Phase }

// ConnectivityError means no response was received at all.
type ConnectivityError struct {
	Phase Phase
	Err   error
}

func (e *ConnectivityError) Error() string      { return MsgNetwork }
func (e *ConnectivityError) Unwrap() error      { return e.Err }
func (e *ConnectivityError) FailedPhase() Phase { return e.Phase }

// MalformedResponseError means a 2xx body did not have the expected shape.
type MalformedResponseError struct {
	Phase  Phase
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response from backend: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response from backend: %s", e.Reason)
}
func (e *MalformedResponseError) Unwrap() error      { return e.Err }
func (e *MalformedResponseError) FailedPhase() Phase { return e.Phase }

// AcquireError carries the normalized symbol and request id of a failed Acquire.
type AcquireError struct {
	Symbol    string
	RequestID string
	Err       error
}

func (e *AcquireError) Error() string { return e.Err.Error() }
func (e *AcquireError) Unwrap() error { return e.Err }

// KindOf classifies err. Unclassified non-nil errors are KindUnknown.
func KindOf(err error) Kind {
	var (
		ve *ValidationError
		re *RemoteRejectionError
		ce *ConnectivityError
		me *MalformedResponseError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &re):
		return KindRemoteRejection
	case errors.As(err, &ce):
		return KindConnectivity
	case errors.As(err, &me):
		return KindMalformedResponse
	default:
		return KindUnknown
	}
}

// PhaseOf reports the phase a classified error happened in.
func PhaseOf(err error) Phase {
	var p interface{ FailedPhase() Phase }
	if errors.As(err, &p) {
		return p.FailedPhase()
	}
	return PhaseNone
}
