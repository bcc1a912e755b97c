package domain

import "time"

// StatusTag is the discriminant of the lifecycle family.
type StatusTag string

const (
	StatusDraft     StatusTag = "draft"
	StatusPublished StatusTag = "published"
	StatusArchived  StatusTag = "archived"
)

// Status is the lifecycle state of a content item. Draft, Published and
// Archived are the only members.
type Status interface {
	Tag() StatusTag
	status()
}

// Draft content has not been released yet.
type Draft struct {
	LastModified time.Time
}

// Published content is live and counting views.
type Published struct {
	PublishedAt time.Time
	Views       int
}

// Archived content was withdrawn for Reason.
type Archived struct {
	ArchivedAt time.Time
	Reason     string
}

func (Draft) Tag() StatusTag     { return StatusDraft }
func (Published) Tag() StatusTag { return StatusPublished }
func (Archived) Tag() StatusTag  { return StatusArchived }

func (Draft) status()     {}
func (Published) status() {}
func (Archived) status()  {}

// Status field names.
const (
	FieldStatus       = "status"
	FieldLastModified = "lastModified"
	FieldPublishedAt  = "publishedAt"
	FieldViews        = "views"
	FieldArchivedAt   = "archivedAt"
	FieldReason       = "reason"
)
