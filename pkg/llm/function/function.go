// Package function binds a system instruction and a model provider to a typed
// input/output contract. A Function is built once and run many times.
package function

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jingkaihe/hrskills/pkg/logger"
	"github.com/jingkaihe/hrskills/pkg/telemetry"
	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
)

// Function asks the model to perform one fixed task and decodes the answer into T.
// It holds no mutable state and is safe for concurrent use.
type Function[T any] struct {
	name         string
	provider     llmtypes.Provider
	instructions string
	systemPrompt string
	maxTokens    int
}

type options struct {
	name      string
	maxTokens int
}

// Option customises a Function
type Option func(*options)

// WithName sets the name used in logs and traces
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithMaxTokens overrides the provider's default response token limit
func WithMaxTokens(n int) Option {
	return func(o *options) { o.maxTokens = n }
}

// NewWithSystemInstructions creates a Function that sends instructions as the
// system prompt, followed by the JSON schema of T. A nil provider is a
// configuration error.
func NewWithSystemInstructions[T any](provider llmtypes.Provider, instructions string, opts ...Option) (*Function[T], error) {
	if provider == nil {
		return nil, &llmtypes.ConfigError{Reason: "model function requires a configured provider"}
	}
	if strings.TrimSpace(instructions) == "" {
		return nil, errors.New("model function requires system instructions")
	}

	o := options{name: "function"}
	for _, opt := range opts {
		opt(&o)
	}

	schema, err := json.Marshal(GenerateSchema[T]())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate output schema")
	}

	return &Function[T]{
		name:         o.name,
		provider:     provider,
		instructions: instructions,
		systemPrompt: buildSystemPrompt(instructions, string(schema)),
		maxTokens:    o.maxTokens,
	}, nil
}

// GenerateSchema returns the JSON schema the model answer must satisfy
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

func buildSystemPrompt(instructions, schema string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(instructions))
	b.WriteString("\n\nRespond with JSON only, no prose and no Markdown. The JSON must validate against this schema:\n")
	b.WriteString(schema)
	return b.String()
}

// Name returns the function name
func (f *Function[T]) Name() string {
	return f.name
}

// Instructions returns the system instruction the function was built with
func (f *Function[T]) Instructions() string {
	return f.instructions
}

// SystemPrompt returns the full system prompt sent to the provider
func (f *Function[T]) SystemPrompt() string {
	return f.systemPrompt
}

// Run makes one provider call with input as the user turn and decodes the
// answer into T. Provider failures and undecodable answers are both errors.
func (f *Function[T]) Run(ctx context.Context, input string) (T, error) {
	var result T

	err := telemetry.WithSpan(ctx, "llm.function.run", func(ctx context.Context) error {
		log := logger.G(ctx).WithFields(logrus.Fields{
			"function":           f.name,
			logger.FieldProvider: f.provider.Name(),
			logger.FieldModel:    f.provider.Model(),
		})
		log.Debug("running model function")

		resp, err := f.provider.Complete(ctx, llmtypes.Request{
			SystemPrompt: f.systemPrompt,
			Prompt:       input,
			MaxTokens:    f.maxTokens,
		})
		if err != nil {
			return errors.Wrapf(err, "model function %s failed", f.name)
		}

		telemetry.SetAttributes(ctx,
			attribute.Int("llm.usage.input_tokens", resp.Usage.InputTokens),
			attribute.Int("llm.usage.output_tokens", resp.Usage.OutputTokens),
		)

		decoded, err := decode[T](resp.Text)
		if err != nil {
			return errors.Wrapf(err, "model function %s returned an unusable answer", f.name)
		}
		result = decoded

		log.WithField("output_tokens", resp.Usage.OutputTokens).Debug("model function finished")
		return nil
	},
		attribute.String("llm.function", f.name),
		attribute.String("llm.provider", f.provider.Name()),
		attribute.String("llm.model", f.provider.Model()),
	)

	return result, err
}
