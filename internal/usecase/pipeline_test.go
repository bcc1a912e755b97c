package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ContentDesk/internal/dispatch"
	"ContentDesk/internal/domain"
	"ContentDesk/internal/ports"
)

type stubSource struct {
	reqs []domain.Request
	err  error
}

func (s stubSource) Load(context.Context) ([]domain.Request, error) { return s.reqs, s.err }

type memoryLog struct {
	mu        sync.Mutex
	decisions []domain.Decision
	err       error
}

func (m *memoryLog) Record(_ context.Context, d domain.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.decisions = append(m.decisions, d)
	return nil
}

func (m *memoryLog) List(context.Context, ports.DecisionFilter) ([]domain.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Decision(nil), m.decisions...), nil
}

func ptr[T any](v T) *T { return &v }

var fixedNow = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

func sampleRequests() []domain.Request {
	return []domain.Request{
		{
			ID: "article",
			Content: domain.ContentShape{
				Headline: ptr("Breaking News"), WordCount: ptr(500), Author: ptr("John Doe"),
			},
			Status: domain.Draft{LastModified: fixedNow},
			User:   domain.Editor{Profile: domain.Profile{ID: 1, Name: "Alice"}, Sections: []string{"politics"}},
		},
		{
			ID: "video",
			Content: domain.ContentShape{
				Title: ptr("News Report"), Duration: ptr(120), Transcript: ptr("..."),
			},
			Status: domain.Published{PublishedAt: fixedNow, Views: 1000},
			User:   domain.Journalist{Profile: domain.Profile{ID: 2, Name: "Bob"}, Articles: 5},
		},
		{
			ID: "audio",
			Content: domain.ContentShape{
				Title: ptr("Podcast Episode"), Duration: ptr(1800), Series: ptr("Today"),
			},
			Status: domain.Archived{ArchivedAt: fixedNow, Reason: "Outdated"},
			User:   domain.Admin{Profile: domain.Profile{ID: 3, Name: "Carol"}, Permissions: []string{"all"}},
		},
	}
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	log := &memoryLog{}
	p := NewPipeline(PipelineDeps{
		Source: stubSource{reqs: sampleRequests()},
		Log:    log,
		Clock:  func() time.Time { return fixedNow },
	})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total())
	assert.Equal(t, 2, summary.Allowed)
	assert.Equal(t, 1, summary.Rejected)

	first := summary.Decisions[0]
	assert.Equal(t, domain.KindArticle, first.Kind)
	assert.Equal(t, domain.VerdictAllowed, first.Verdict)
	assert.Equal(t, `Alice is managing draft article "Breaking News"`, first.Message)
	assert.Equal(t, fixedNow, first.DecidedAt)

	rejected := summary.Decisions[1]
	assert.Equal(t, domain.VerdictRejected, rejected.Verdict)
	assert.Equal(t, domain.ReasonUnauthorized, rejected.Reason)
	assert.Empty(t, rejected.Kind, "content is not resolved for rejected users")

	assert.Equal(t, domain.KindAudio, summary.Decisions[2].Kind)

	recorded, err := log.List(context.Background(), ports.DecisionFilter{})
	require.NoError(t, err)
	assert.Equal(t, summary.Decisions, recorded)
}

func TestPipelineCustomClassifier(t *testing.T) {
	t.Parallel()

	p := NewPipeline(PipelineDeps{
		Classifier: dispatch.New(dispatch.WithPolicy(dispatch.NewPolicy(domain.RoleJournalist))),
	})

	summary, err := p.Classify(context.Background(), sampleRequests())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Allowed)
	assert.Equal(t, 2, summary.Rejected)
	assert.Equal(t, `Bob is reviewing published video "News Report" with 1000 views`, summary.Decisions[1].Message)
}

func TestPipelineErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	t.Run("source", func(t *testing.T) {
		t.Parallel()
		p := NewPipeline(PipelineDeps{Source: stubSource{err: boom}})
		_, err := p.Run(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "load requests")
	})

	t.Run("unresolved shape", func(t *testing.T) {
		t.Parallel()
		req := sampleRequests()[0]
		req.ID = "odd"
		req.Content = domain.ContentShape{Headline: ptr("Only a headline")}
		p := NewPipeline(PipelineDeps{})
		summary, err := p.Classify(context.Background(), []domain.Request{sampleRequests()[2], req})
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindUnresolvedShape), "unexpected error: %v", err)
		assert.Contains(t, err.Error(), "classify request odd")
		assert.Equal(t, 1, summary.Total(), "decisions before the failure are kept")
	})

	t.Run("storage", func(t *testing.T) {
		t.Parallel()
		p := NewPipeline(PipelineDeps{Log: &memoryLog{err: boom}})
		_, err := p.Classify(context.Background(), sampleRequests())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewPipeline(PipelineDeps{}).Classify(ctx, sampleRequests())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPipelineWithoutSource(t *testing.T) {
	t.Parallel()

	summary, err := NewPipeline(PipelineDeps{}).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Total())
}

type manualTrigger struct {
	job     func(time.Time)
	stopped bool
}

func (m *manualTrigger) Start(_ context.Context, job func(time.Time)) error {
	m.job = job
	return nil
}

func (m *manualTrigger) Stop(context.Context) error {
	m.stopped = true
	return nil
}

func TestSchedulerReportsRuns(t *testing.T) {
	t.Parallel()

	trigger := &manualTrigger{}
	pipeline := NewPipeline(PipelineDeps{Source: stubSource{reqs: sampleRequests()}})

	var reports []Summary
	s := NewScheduler(trigger, pipeline, nil, func(_ time.Time, sum Summary) {
		reports = append(reports, sum)
	})
	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, trigger.job)

	trigger.job(fixedNow)
	trigger.job(fixedNow.Add(time.Minute))
	require.Len(t, reports, 2)
	assert.Equal(t, 3, reports[1].Total())

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, trigger.stopped)
}

func TestSchedulerSwallowsRunFailure(t *testing.T) {
	t.Parallel()

	trigger := &manualTrigger{}
	pipeline := NewPipeline(PipelineDeps{Source: stubSource{err: errors.New("bad fixture")}})

	called := false
	s := NewScheduler(trigger, pipeline, nil, func(time.Time, Summary) { called = true })
	require.NoError(t, s.Start(context.Background()))

	trigger.job(fixedNow)
	assert.False(t, called, "failed runs are logged, not reported")
}

func TestSchedulerWithoutDriver(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil, nil, nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
