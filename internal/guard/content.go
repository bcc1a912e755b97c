package guard

import (
	"fmt"
	"strings"

	"ContentDesk/internal/domain"
)

// ContentGuard recognises one content kind by the fields a shape carries.
type ContentGuard interface {
	Kind() domain.ContentKind
	Match(shape domain.ContentShape) bool
	Build(shape domain.ContentShape) (domain.Content, error)
}

// DefaultContentOrder returns the evaluation order of the default guards. The first
// matching guard wins, so a shape carrying both a transcript and a series is
// a video, and a shape carrying a word count is an article whatever else it
// has. A bare title and duration falls through to audio.
func DefaultContentOrder() []domain.ContentKind {
	return []domain.ContentKind{domain.KindArticle, domain.KindVideo, domain.KindAudio}
}

// Set keeps content guards in evaluation order.
type Set struct {
	guards []ContentGuard
}

// NewSet builds a set evaluating guards in the given order.
func NewSet(guards ...ContentGuard) *Set {
	s := &Set{}
	for _, g := range guards {
		s.Register(g)
	}
	return s
}

// DefaultSet returns the article, video, audio guard chain.
func DefaultSet() *Set {
	return NewSet(ArticleGuard{}, VideoGuard{}, AudioGuard{})
}

// Register appends a guard, or replaces the guard for the same kind in place
// so its priority is kept.
func (s *Set) Register(g ContentGuard) {
	for i, existing := range s.guards {
		if existing.Kind() == g.Kind() {
			s.guards[i] = g
			return
		}
	}
	s.guards = append(s.guards, g)
}

// Order lists the kinds in evaluation order.
func (s *Set) Order() []domain.ContentKind {
	out := make([]domain.ContentKind, len(s.guards))
	for i, g := range s.guards {
		out[i] = g.Kind()
	}
	return out
}

// Lookup returns the guard registered for kind.
func (s *Set) Lookup(kind domain.ContentKind) (ContentGuard, error) {
	for _, g := range s.guards {
		if g.Kind() == kind {
			return g, nil
		}
	}
	return nil, &domain.OpError{
		Op:   "guard.lookup",
		Kind: domain.KindUnknownVariant,
		Err:  fmt.Errorf("content kind %q is not registered: %w", kind, domain.ErrUnknownVariant),
	}
}

// Match returns the guard that claims shape. An explicit kind on the shape
// selects its guard directly; otherwise guards are tried in order.
func (s *Set) Match(shape domain.ContentShape) (ContentGuard, error) {
	if shape.Kind != "" {
		return s.Lookup(shape.Kind)
	}
	for _, g := range s.guards {
		if g.Match(shape) {
			return g, nil
		}
	}
	return nil, &domain.OpError{
		Op:   "guard.match",
		Kind: domain.KindUnresolvedShape,
		Err:  fmt.Errorf("no content guard matches fields [%s]: %w", strings.Join(shape.Present(), ", "), domain.ErrUnresolvedShape),
	}
}

// Resolve turns a shape into typed content.
func (s *Set) Resolve(shape domain.ContentShape) (domain.Content, error) {
	g, err := s.Match(shape)
	if err != nil {
		return nil, err
	}
	return g.Build(shape)
}

// ArticleGuard claims any shape with a word count.
type ArticleGuard struct{}

func (ArticleGuard) Kind() domain.ContentKind { return domain.KindArticle }

func (ArticleGuard) Match(shape domain.ContentShape) bool {
	return shape.Has(domain.FieldWordCount)
}

func (ArticleGuard) Build(shape domain.ContentShape) (domain.Content, error) {
	if err := requireFields(domain.KindArticle, shape); err != nil {
		return nil, err
	}
	return domain.Article{
		Headline:  *shape.Headline,
		WordCount: *shape.WordCount,
		Author:    *shape.Author,
	}, nil
}

// VideoGuard claims any shape with a transcript.
type VideoGuard struct{}

func (VideoGuard) Kind() domain.ContentKind { return domain.KindVideo }

func (VideoGuard) Match(shape domain.ContentShape) bool {
	return shape.Has(domain.FieldTranscript)
}

func (VideoGuard) Build(shape domain.ContentShape) (domain.Content, error) {
	if err := requireFields(domain.KindVideo, shape); err != nil {
		return nil, err
	}
	return domain.Video{
		Title:      *shape.Title,
		Duration:   *shape.Duration,
		Transcript: deref(shape.Transcript),
	}, nil
}

// AudioGuard claims shapes with a series, and any remaining timed shape.
type AudioGuard struct{}

func (AudioGuard) Kind() domain.ContentKind { return domain.KindAudio }

func (AudioGuard) Match(shape domain.ContentShape) bool {
	if shape.Has(domain.FieldSeries) {
		return true
	}
	return shape.Has(domain.FieldTitle) && shape.Has(domain.FieldDuration)
}

func (AudioGuard) Build(shape domain.ContentShape) (domain.Content, error) {
	if err := requireFields(domain.KindAudio, shape); err != nil {
		return nil, err
	}
	return domain.Audio{
		Title:    *shape.Title,
		Duration: *shape.Duration,
		Series:   deref(shape.Series),
	}, nil
}

func requireFields(kind domain.ContentKind, shape domain.ContentShape) error {
	variant, ok := domain.ContentFamily().Variant(string(kind))
	if !ok {
		return &domain.OpError{
			Op:   "guard.build",
			Kind: domain.KindUnknownVariant,
			Err:  fmt.Errorf("content kind %q: %w", kind, domain.ErrUnknownVariant),
		}
	}

	var missing []string
	for _, name := range variant.Required() {
		if !shape.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &domain.OpError{
		Op:    "guard.build",
		Kind:  domain.KindInvalidInput,
		Field: strings.Join(missing, ","),
		Err:   fmt.Errorf("%s is missing %s: %w", kind, strings.Join(missing, ", "), domain.ErrInvalidInput),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
