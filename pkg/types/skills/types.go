// Package skills defines the contract between a skill and the runtime that
// hosts it: the handler entry point, the collaborators it is handed, and the
// terminal outcome it must produce.
package skills

import (
	"context"

	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

// Handler is a single, independently invocable unit of agent behaviour.
// OnRequest drives one invocation and returns exactly one Outcome, or an
// error for faults the skill does not expect to handle.
type Handler interface {
	Metadata() Metadata
	OnRequest(ctx context.Context, state State, progress ProgressSender, runtime Runtime, content Content) (Outcome, error)
}

// State is the key-value store shared by all skills of one session.
type State interface {
	// Load decodes the value stored under key into out. It reports false
	// with a nil error when the key is absent.
	Load(ctx context.Context, key string, out any) (bool, error)
	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value any) error
}

// ProgressSender delivers human readable status updates to the caller in
// the order they are sent.
type ProgressSender interface {
	SendUpdate(ctx context.Context, message string) error
}

// Runtime is the handle to the hosting runtime. Skills reach shared
// capabilities through it and never inspect it otherwise.
type Runtime interface {
	Provider() llmtypes.Provider
}

// Metadata describes a skill to the runtime and to users
type Metadata struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	InputModes  []string `json:"input_modes,omitempty" yaml:"input_modes,omitempty"`
	OutputModes []string `json:"output_modes,omitempty" yaml:"output_modes,omitempty"`
}
