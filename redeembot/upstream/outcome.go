package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// SuccessMarker is the value of Response.Data the store uses for success.
const SuccessMarker = "success"

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRejected
	OutcomeTransportFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of one redemption or check-in call.
// Code and Message are set for rejections, Err for transport failures.
type Outcome struct {
	Kind    OutcomeKind
	Code    int
	Message string
	Err     error
}

func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

func Rejected(code int, message string) Outcome {
	return Outcome{Kind: OutcomeRejected, Code: code, Message: message}
}

func TransportFailure(err error) Outcome {
	return Outcome{Kind: OutcomeTransportFailure, Err: err}
}

func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

// Reason is a short human readable explanation, empty on success.
func (o Outcome) Reason() string {
	switch o.Kind {
	case OutcomeRejected:
		return fmt.Sprintf("rejected (%d): %s", o.Code, o.Message)
	case OutcomeTransportFailure:
		if o.Err == nil {
			return "transport failure"
		}
		return o.Err.Error()
	default:
		return ""
	}
}

// Response is the envelope returned by the redeem and sign-in endpoints.
type Response struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// DataString returns Data when it is a JSON string.
func (r Response) DataString() (string, bool) {
	trimmed := bytes.TrimSpace(r.Data)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// Classifier maps a well-formed store response to an Outcome.
type Classifier func(Response) Outcome

// DefaultClassifier treats only data == "success" as success. Everything
// else, including code 80006 "Maximum limit redemption times reached", is a
// rejection.
func DefaultClassifier(r Response) Outcome {
	if data, ok := r.DataString(); ok && data == SuccessMarker {
		return Success()
	}
	return Rejected(r.Code, r.Message)
}

// LenientClassifier also accepts the given upstream codes as success.
func LenientClassifier(successCodes ...int) Classifier {
	codes := slices.Clone(successCodes)
	return func(r Response) Outcome {
		out := DefaultClassifier(r)
		if !out.Succeeded() && slices.Contains(codes, r.Code) {
			return Success()
		}
		return out
	}
}
