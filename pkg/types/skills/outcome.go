package skills

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// OutcomeStatus identifies the shape of a terminal outcome
type OutcomeStatus string

const (
	// OutcomeCompleted is a successful invocation, optionally with artifacts
	OutcomeCompleted OutcomeStatus = "completed"
	// OutcomeFailed is an expected, user facing business failure
	OutcomeFailed OutcomeStatus = "failed"
)

// Artifact is a named, typed payload attached to a completed outcome
type Artifact struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// DecodeJSON decodes the artifact payload into out
func (a Artifact) DecodeJSON(out any) error {
	if a.MimeType != MimeTypeJSON {
		return errors.Errorf("artifact %s has mime type %s, not %s", a.Name, a.MimeType, MimeTypeJSON)
	}
	return errors.Wrapf(json.Unmarshal(a.Data, out), "failed to decode artifact %s", a.Name)
}

// Outcome is the single terminal result of one skill invocation.
// Build it with Completed or Failed.
type Outcome struct {
	Status    OutcomeStatus `json:"status"`
	Message   *Content      `json:"message,omitempty"`
	Artifacts []Artifact    `json:"artifacts,omitempty"`
	Error     *Content      `json:"error,omitempty"`
}

// Completed creates a successful outcome. message may be nil.
func Completed(message *Content, artifacts ...Artifact) Outcome {
	return Outcome{
		Status:    OutcomeCompleted,
		Message:   message,
		Artifacts: artifacts,
	}
}

// Failed creates a failed outcome carrying a human readable error
func Failed(message Content) Outcome {
	return Outcome{
		Status: OutcomeFailed,
		Error:  &message,
	}
}

// IsCompleted reports whether the outcome is a success
func (o Outcome) IsCompleted() bool {
	return o.Status == OutcomeCompleted
}

// IsFailed reports whether the outcome is a business failure
func (o Outcome) IsFailed() bool {
	return o.Status == OutcomeFailed
}

// Validate checks that the outcome has exactly one of the two allowed shapes
func (o Outcome) Validate() error {
	switch o.Status {
	case OutcomeCompleted:
		if o.Error != nil {
			return errors.New("completed outcome must not carry an error")
		}
		for i, a := range o.Artifacts {
			if a.Name == "" {
				return errors.Errorf("artifact %d has no name", i)
			}
		}
	case OutcomeFailed:
		if o.Error == nil {
			return errors.New("failed outcome must carry an error message")
		}
		if o.Message != nil || len(o.Artifacts) > 0 {
			return errors.New("failed outcome must not carry a message or artifacts")
		}
	default:
		return errors.Errorf("unknown outcome status %q", o.Status)
	}
	return nil
}
