package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ContentDesk/internal/dispatch"
	"ContentDesk/internal/domain"
	"ContentDesk/internal/ports"
)

// PipelineDeps wires the driven adapters into the classification pipeline.
type PipelineDeps struct {
	Source     ports.RequestSource
	Classifier ports.Classifier
	Log        ports.DecisionLog
	Logger     *slog.Logger
	Clock      func() time.Time
}

// Pipeline loads requests, dispatches them and records the decisions.
type Pipeline struct {
	source     ports.RequestSource
	classifier ports.Classifier
	log        ports.DecisionLog
	logger     *slog.Logger
	now        func() time.Time
}

// Summary is the result of one pipeline pass.
type Summary struct {
	Decisions []domain.Decision
	Allowed   int
	Rejected  int
}

// Total is the number of classified requests.
func (s Summary) Total() int { return len(s.Decisions) }

// NewPipeline constructs the orchestration component. A nil classifier means
// the default dispatcher.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:     deps.Source,
		classifier: deps.Classifier,
		log:        deps.Log,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if p.classifier == nil {
		p.classifier = dispatch.New()
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Run classifies everything the source yields.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	if p.source == nil {
		return Summary{}, nil
	}

	reqs, err := p.source.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load requests: %w", err)
	}
	p.logger.Debug("requests loaded", "count", len(reqs))

	return p.Classify(ctx, reqs)
}

// Classify dispatches reqs in order. A rejection is a normal decision; only
// boundary and storage failures abort the pass.
func (p *Pipeline) Classify(ctx context.Context, reqs []domain.Request) (Summary, error) {
	summary := Summary{Decisions: make([]domain.Decision, 0, len(reqs))}

	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome, content, err := p.classifier.ClassifyShape(req.Content, req.Status, req.User)
		if err != nil {
			return summary, fmt.Errorf("classify request %s: %w", req.ID, err)
		}

		var kind domain.ContentKind
		if content != nil {
			kind = content.Kind()
		}
		decision := domain.NewDecision(req, kind, outcome, p.now())

		switch outcome.(type) {
		case domain.Allowed:
			summary.Allowed++
		case domain.Rejected:
			summary.Rejected++
		default:
			panic(domain.Unhandled("outcome", outcome))
		}

		p.logger.Info("request classified",
			"request", req.ID,
			"origin", req.Origin,
			"role", decision.Role,
			"kind", decision.Kind,
			"verdict", decision.Verdict,
		)

		if p.log != nil {
			if err := p.log.Record(ctx, decision); err != nil {
				return summary, fmt.Errorf("persist decision %s: %w", req.ID, err)
			}
		}
		summary.Decisions = append(summary.Decisions, decision)
	}

	return summary, nil
}
