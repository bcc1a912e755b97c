// Package describe renders single-axis descriptions of content, lifecycle
// status and users, plus the one-line display used in listings.
package describe

import (
	"fmt"
	"strings"
	"time"

	"ContentDesk/internal/domain"
)

// Describer formats timestamps in a fixed location.
type Describer struct {
	loc *time.Location
}

// New builds a Describer. A nil location means UTC.
func New(loc *time.Location) Describer {
	if loc == nil {
		loc = time.UTC
	}
	return Describer{loc: loc}
}

func (d Describer) stamp(t time.Time) string {
	loc := d.loc
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(time.RFC3339)
}

// Content describes a content item on its own.
func (d Describer) Content(c domain.Content) string {
	switch v := c.(type) {
	case domain.Article:
		return fmt.Sprintf("Processing article: %s by %s", v.Headline, v.Author)
	case domain.Video:
		return fmt.Sprintf("Processing video: %s, Duration: %ds", v.Title, v.Duration)
	case domain.Audio:
		return fmt.Sprintf("Processing audio: %s, Duration: %ds", v.Title, v.Duration)
	default:
		panic(domain.Unhandled(domain.FamilyContent, c))
	}
}

// Status describes a lifecycle state on its own.
func (d Describer) Status(s domain.Status) string {
	switch v := s.(type) {
	case domain.Draft:
		return "Draft last modified: " + d.stamp(v.LastModified)
	case domain.Published:
		return fmt.Sprintf("Published on %s with %d views", d.stamp(v.PublishedAt), v.Views)
	case domain.Archived:
		return fmt.Sprintf("Archived on %s. Reason: %s", d.stamp(v.ArchivedAt), v.Reason)
	default:
		panic(domain.Unhandled(domain.FamilyStatus, s))
	}
}

// User describes a newsroom member by role.
func (d Describer) User(u domain.User) string {
	switch v := u.(type) {
	case domain.Editor:
		return fmt.Sprintf("Editor %s manages sections: %s", v.Name, strings.Join(v.Sections, ", "))
	case domain.Journalist:
		return fmt.Sprintf("Journalist %s has written %d articles", v.Name, v.Articles)
	case domain.Admin:
		return fmt.Sprintf("Admin %s has permissions: %s", v.Name, strings.Join(v.Permissions, ", "))
	default:
		panic(domain.Unhandled(domain.FamilyRole, u))
	}
}

// DisplayInfo is the listing line for content in a given state.
func (d Describer) DisplayInfo(c domain.Content, s domain.Status) string {
	var info string
	switch v := c.(type) {
	case domain.Article:
		info = fmt.Sprintf("Article %q by %s", v.Headline, v.Author)
	case domain.Video:
		info = fmt.Sprintf("Video %q (%ds)", v.Title, v.Duration)
	case domain.Audio:
		info = fmt.Sprintf("Audio %q (%ds)", v.Title, v.Duration)
	default:
		panic(domain.Unhandled(domain.FamilyContent, c))
	}

	switch v := s.(type) {
	case domain.Draft:
		return fmt.Sprintf("%s - Draft (last modified: %s)", info, d.stamp(v.LastModified))
	case domain.Published:
		return fmt.Sprintf("%s - Published (%d views)", info, v.Views)
	case domain.Archived:
		return fmt.Sprintf("%s - Archived (%s)", info, v.Reason)
	default:
		panic(domain.Unhandled(domain.FamilyStatus, s))
	}
}
