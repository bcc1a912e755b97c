package ports

import (
	"context"
	"time"

	"ContentDesk/internal/domain"
)

// RequestSource loads classification requests from a boundary (fixtures, etc.).
type RequestSource interface {
	Load(ctx context.Context) ([]domain.Request, error)
}

// Classifier is the pure dispatch core as seen by use cases.
type Classifier interface {
	ClassifyShape(shape domain.ContentShape, status domain.Status, user domain.User) (domain.Outcome, domain.Content, error)
}

// DecisionFilter narrows a decision log query. Zero values match everything.
type DecisionFilter struct {
	Verdict domain.Verdict
	Role    domain.Role
	Limit   int
}

// DecisionLog persists decisions for audit.
type DecisionLog interface {
	Record(ctx context.Context, decision domain.Decision) error
	List(ctx context.Context, filter DecisionFilter) ([]domain.Decision, error)
}

// Trigger controls when pipelines execute.
type Trigger interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
