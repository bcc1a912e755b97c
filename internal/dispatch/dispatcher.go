// Package dispatch decides what a newsroom user is doing with a content item.
//
// A dispatch runs four stages in order: authorize the user against the
// Policy, describe the content, describe the lifecycle status, compose the
// message. Authorization failure stops the dispatch before content or status
// is looked at and is returned as a domain.Rejected value, never as an error.
//
// Go cannot prove a type switch over a sealed interface complete, so every
// switch here ends in a panic carrying *domain.UnhandledVariantError. The
// package tests enumerate the variant registry to catch a missing case.
//
// A Dispatcher holds no mutable state and is safe for concurrent use.
package dispatch

import (
	"fmt"

	"ContentDesk/internal/domain"
	"ContentDesk/internal/guard"
)

// Dispatcher classifies (content, status, user) triples.
type Dispatcher struct {
	policy Policy
	guards *guard.Set
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPolicy replaces the default editor/admin policy.
func WithPolicy(p Policy) Option {
	return func(d *Dispatcher) { d.policy = p }
}

// WithGuards replaces the default content guard chain used by ClassifyShape.
func WithGuards(s *guard.Set) Option {
	return func(d *Dispatcher) {
		if s != nil {
			d.guards = s
		}
	}
}

// New builds a Dispatcher with the default policy and guard order.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		policy: DefaultPolicy(),
		guards: guard.DefaultSet(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDispatcher = New()

// Classify dispatches with the default policy.
func Classify(content domain.Content, status domain.Status, user domain.User) domain.Outcome {
	return defaultDispatcher.Classify(content, status, user)
}

// Policy returns the authorization policy in force.
func (d *Dispatcher) Policy() Policy { return d.policy }

// Classify returns Allowed with the composed message, or Rejected when the
// user's role is not permitted. Pointers to variants are not members: a
// pointer user is rejected and a pointer status or content panics.
func (d *Dispatcher) Classify(content domain.Content, status domain.Status, user domain.User) domain.Outcome {
	if rejected, ok := d.policy.Authorize(user); !ok {
		return rejected
	}
	return compose(user, describeContent(content), status)
}

// ClassifyShape is Classify for untagged content. The shape is resolved by the
// guard chain only after authorization passes; the resolved content is
// returned alongside the outcome and is nil on rejection. A shape no guard can
// build is an input fault and is returned as an error.
func (d *Dispatcher) ClassifyShape(shape domain.ContentShape, status domain.Status, user domain.User) (domain.Outcome, domain.Content, error) {
	if rejected, ok := d.policy.Authorize(user); !ok {
		return rejected, nil, nil
	}

	content, err := d.guards.Resolve(shape)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve content: %w", err)
	}
	return compose(user, describeContent(content), status), content, nil
}

func describeContent(c domain.Content) string {
	switch v := c.(type) {
	case domain.Article:
		return fmt.Sprintf(`article "%s"`, v.Headline)
	case domain.Video:
		return fmt.Sprintf(`video "%s"`, v.Title)
	case domain.Audio:
		return fmt.Sprintf(`audio "%s"`, v.Title)
	default:
		panic(domain.Unhandled(domain.FamilyContent, c))
	}
}

func describeStatus(s domain.Status, content string) string {
	switch v := s.(type) {
	case domain.Draft:
		return "is managing draft " + content
	case domain.Published:
		return fmt.Sprintf("is reviewing published %s with %d views", content, v.Views)
	case domain.Archived:
		return fmt.Sprintf("is accessing archived %s: %s", content, v.Reason)
	default:
		panic(domain.Unhandled(domain.FamilyStatus, s))
	}
}

func compose(user domain.User, content string, status domain.Status) domain.Outcome {
	return domain.Allowed{
		Message: user.Identity().Name + " " + describeStatus(status, content),
	}
}
