// Package queue runs the scoring engine as an AMQP RPC worker: score requests arrive on
// a durable queue and results are published to each message's reply-to queue.
package queue

import (
	"errors"

	"github.com/jonathan/resume-scorer/internal/engine"
	"github.com/jonathan/resume-scorer/internal/source"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/types"
)

// ScoreMessage is a scoring request. Exactly one of ResumeText and ResumeRef is set;
// a ref is an s3://bucket/key location.
type ScoreMessage struct {
	ID         string                  `json:"id,omitempty"`
	ResumeText string                  `json:"resume_text,omitempty"`
	ResumeRef  string                  `json:"resume_ref,omitempty"`
	Job        *types.JobDescription   `json:"job_description,omitempty"`
	Sections   []types.SectionBoundary `json:"sections,omitempty"`
}

// ResultMessage answers a ScoreMessage. Exactly one of Result and Error is set.
type ResultMessage struct {
	ID     string             `json:"id"`
	Result *types.MatchResult `json:"result,omitempty"`
	Error  *ErrorInfo         `json:"error,omitempty"`
}

// ErrorInfo describes why a message could not be scored.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error kinds reported in ErrorInfo.Kind
const (
	KindInvalidInput = "invalid_input"
	KindTooLarge     = "input_too_large"
	KindNotFound     = "not_found"
	KindUnavailable  = "unavailable"
	KindInternal     = "internal"
)

// disposition is what happens to a delivery after processing.
type disposition int

const (
	ack     disposition = iota
	reject              // nack without requeue; the message can never succeed
	requeue             // nack with requeue; the failure may be transient
)

// classify maps a processing error to its reported kind and the delivery outcome.
func classify(err error) (ErrorInfo, disposition) {
	info := ErrorInfo{Kind: KindInternal, Message: err.Error()}

	var inputErr *engine.InputError
	if errors.As(err, &inputErr) {
		info.Field = inputErr.Field
	}

	switch {
	case errors.Is(err, engine.ErrInputTooLarge), errors.Is(err, source.ErrTooLarge):
		info.Kind = KindTooLarge
		return info, reject
	case errors.Is(err, engine.ErrInvalidInput), errors.Is(err, source.ErrUnsupported):
		info.Kind = KindInvalidInput
		return info, reject
	case errors.Is(err, source.ErrNotFound):
		info.Kind = KindNotFound
		return info, reject
	case errors.Is(err, taxonomy.ErrTaxonomyUnavailable):
		info.Kind = KindUnavailable
		return info, requeue
	default:
		return info, requeue
	}
}
