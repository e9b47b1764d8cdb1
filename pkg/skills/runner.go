package skills

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jingkaihe/hrskills/pkg/logger"
	"github.com/jingkaihe/hrskills/pkg/progress"
	"github.com/jingkaihe/hrskills/pkg/session"
	"github.com/jingkaihe/hrskills/pkg/telemetry"
	llmtypes "github.com/jingkaihe/hrskills/pkg/types/llm"
	skilltypes "github.com/jingkaihe/hrskills/pkg/types/skills"
)

// ErrSkillNotFound is returned when a request names an unregistered skill
var ErrSkillNotFound = errors.New("skill not found")

// Request is one skill invocation
type Request struct {
	SessionID string
	SkillID   string
	Content   skilltypes.Content
}

// Runner invokes registered skills against a session store
type Runner struct {
	registry *Registry
	store    session.Store
	provider llmtypes.Provider
}

// NewRunner creates a runner. provider may be nil when no registered skill needs it.
func NewRunner(registry *Registry, store session.Store, provider llmtypes.Provider) *Runner {
	return &Runner{registry: registry, store: store, provider: provider}
}

// Provider implements skills.Runtime
func (r *Runner) Provider() llmtypes.Provider {
	return r.provider
}

// Registry returns the registry the runner resolves skills from
func (r *Runner) Registry() *Registry {
	return r.registry
}

// Invoke runs the requested skill once. A nil sender discards updates.
func (r *Runner) Invoke(ctx context.Context, req Request, sender skilltypes.ProgressSender) (skilltypes.Outcome, error) {
	if req.SessionID == "" {
		return skilltypes.Outcome{}, errors.New("session id is required")
	}
	handler, ok := r.registry.Get(req.SkillID)
	if !ok {
		return skilltypes.Outcome{}, errors.Wrapf(ErrSkillNotFound, "skill %q", req.SkillID)
	}
	if sender == nil {
		sender = progress.Discard
	}

	ctx = logger.WithFields(ctx, logrus.Fields{
		logger.FieldSkill:     req.SkillID,
		logger.FieldSessionID: req.SessionID,
	})

	var outcome skilltypes.Outcome
	err := telemetry.WithSpan(ctx, "skill.invoke", func(ctx context.Context) error {
		log := logger.G(ctx)
		log.Info("invoking skill")
		start := time.Now()

		state := session.NewState(r.store, req.SessionID)
		result, err := handler.OnRequest(ctx, state, tracedSender{sender}, r, req.Content)
		if err != nil {
			log.WithError(err).Warn("skill invocation failed")
			return err
		}
		if err := result.Validate(); err != nil {
			return errors.Wrapf(err, "skill %s returned an invalid outcome", req.SkillID)
		}

		telemetry.SetAttributes(ctx,
			attribute.String("skill.outcome", string(result.Status)),
			attribute.Int("skill.artifacts", len(result.Artifacts)),
		)
		log.WithFields(logrus.Fields{
			"status":   result.Status,
			"duration": time.Since(start).String(),
		}).Info("skill invocation finished")

		outcome = result
		return nil
	},
		attribute.String("skill.id", req.SkillID),
		attribute.String("session.id", req.SessionID),
	)
	if err != nil {
		return skilltypes.Outcome{}, err
	}
	return outcome, nil
}

// tracedSender records every delivered update as an event on the span in ctx
type tracedSender struct {
	next skilltypes.ProgressSender
}

func (s tracedSender) SendUpdate(ctx context.Context, message string) error {
	if err := s.next.SendUpdate(ctx, message); err != nil {
		return err
	}
	telemetry.AddEvent(ctx, "progress.update", attribute.String("progress.message", message))
	return nil
}
