package describe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ContentDesk/internal/domain"
)

var stamp = time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)

func TestContent(t *testing.T) {
	t.Parallel()

	d := New(nil)
	assert.Equal(t, "Processing article: Breaking News by John Doe",
		d.Content(domain.Article{Headline: "Breaking News", WordCount: 500, Author: "John Doe"}))
	assert.Equal(t, "Processing video: News Report, Duration: 120s",
		d.Content(domain.Video{Title: "News Report", Duration: 120}))
	assert.Equal(t, "Processing audio: Podcast Episode, Duration: 1800s",
		d.Content(domain.Audio{Title: "Podcast Episode", Duration: 1800, Series: "Today"}))
}

func TestStatusUsesLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Draft last modified: 2026-03-01T09:30:00Z", New(nil).Status(domain.Draft{LastModified: stamp}))

	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	got := New(london).Status(domain.Published{PublishedAt: time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC), Views: 1000})
	assert.Equal(t, "Published on 2026-07-01T10:00:00+01:00 with 1000 views", got)

	assert.Equal(t, "Archived on 2026-03-01T09:30:00Z. Reason: Outdated information",
		New(time.UTC).Status(domain.Archived{ArchivedAt: stamp, Reason: "Outdated information"}))
}

func TestUser(t *testing.T) {
	t.Parallel()

	d := New(nil)
	assert.Equal(t, "Editor Alice manages sections: News, Sport",
		d.User(domain.Editor{Profile: domain.Profile{Name: "Alice"}, Sections: []string{"News", "Sport"}}))
	assert.Equal(t, "Journalist Bob has written 50 articles",
		d.User(domain.Journalist{Profile: domain.Profile{Name: "Bob"}, Articles: 50}))
	assert.Equal(t, "Admin Charlie has permissions: delete, publish",
		d.User(domain.Admin{Profile: domain.Profile{Name: "Charlie"}, Permissions: []string{"delete", "publish"}}))
}

func TestDisplayInfo(t *testing.T) {
	t.Parallel()

	d := New(nil)
	assert.Equal(t, `Article "Breaking News" by John Doe - Draft (last modified: 2026-03-01T09:30:00Z)`,
		d.DisplayInfo(domain.Article{Headline: "Breaking News", Author: "John Doe"}, domain.Draft{LastModified: stamp}))
	assert.Equal(t, `Video "Report" (120s) - Published (1000 views)`,
		d.DisplayInfo(domain.Video{Title: "Report", Duration: 120}, domain.Published{Views: 1000}))
	assert.Equal(t, `Audio "Today" (1800s) - Archived (Outdated)`,
		d.DisplayInfo(domain.Audio{Title: "Today", Duration: 1800}, domain.Archived{Reason: "Outdated"}))
}

func TestEveryVariantIsDescribed(t *testing.T) {
	t.Parallel()

	d := New(nil)
	statuses := map[string]domain.Status{
		"draft":     domain.Draft{},
		"published": domain.Published{},
		"archived":  domain.Archived{},
	}
	users := map[string]domain.User{
		"editor":     domain.Editor{},
		"journalist": domain.Journalist{},
		"admin":      domain.Admin{},
	}

	for _, tag := range domain.StatusFamily().Tags() {
		s, ok := statuses[tag]
		if !ok {
			t.Fatalf("no sample for status %q", tag)
		}
		assert.NotPanics(t, func() { d.Status(s) })
	}
	for _, tag := range domain.RoleFamily().Tags() {
		u, ok := users[tag]
		if !ok {
			t.Fatalf("no sample for role %q", tag)
		}
		assert.NotPanics(t, func() { d.User(u) })
	}
	assert.Panics(t, func() { d.User(nil) })
}
