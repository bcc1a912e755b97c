// Package guard answers "is this value a member of variant X?" for every
// variant family.
//
// Tagged families (status, role) are tested on their discriminant. The As*
// helpers double as narrowing checkpoints: they hand back the concrete
// variant when the test passes. Content is untagged on the wire and is
// resolved structurally by an ordered Set (see content.go).
//
// Variants are passed by value. A pointer to a variant still satisfies the
// family interface, but it is not a member: every guard here reports false for
// it, and the dispatcher treats it as an unhandled variant.
package guard

import "ContentDesk/internal/domain"

// TagOf returns the lifecycle tag of a status variant.
func TagOf(s domain.Status) (domain.StatusTag, bool) {
	switch v := s.(type) {
	case domain.Draft, domain.Published, domain.Archived:
		return v.Tag(), true
	default:
		return "", false
	}
}

// RoleOf returns the role of a user variant.
func RoleOf(u domain.User) (domain.Role, bool) {
	switch v := u.(type) {
	case domain.Editor, domain.Journalist, domain.Admin:
		return v.Role(), true
	default:
		return "", false
	}
}

// KindOf returns the kind of a content variant.
func KindOf(c domain.Content) (domain.ContentKind, bool) {
	switch v := c.(type) {
	case domain.Article, domain.Video, domain.Audio:
		return v.Kind(), true
	default:
		return "", false
	}
}

// IsStatus reports whether s carries the given lifecycle tag.
func IsStatus(s domain.Status, tag domain.StatusTag) bool {
	got, ok := TagOf(s)
	return ok && got == tag
}

// IsRole reports whether u carries the given role.
func IsRole(u domain.User, role domain.Role) bool {
	got, ok := RoleOf(u)
	return ok && got == role
}

// IsKind reports whether c is typed content of the given kind.
func IsKind(c domain.Content, kind domain.ContentKind) bool {
	got, ok := KindOf(c)
	return ok && got == kind
}

func IsEditor(u domain.User) bool     { return IsRole(u, domain.RoleEditor) }
func IsJournalist(u domain.User) bool { return IsRole(u, domain.RoleJournalist) }
func IsAdmin(u domain.User) bool      { return IsRole(u, domain.RoleAdmin) }

func IsDraft(s domain.Status) bool     { return IsStatus(s, domain.StatusDraft) }
func IsPublished(s domain.Status) bool { return IsStatus(s, domain.StatusPublished) }
func IsArchived(s domain.Status) bool  { return IsStatus(s, domain.StatusArchived) }

// AsEditor narrows u to an Editor.
func AsEditor(u domain.User) (domain.Editor, bool) {
	e, ok := u.(domain.Editor)
	return e, ok
}

// AsJournalist narrows u to a Journalist.
func AsJournalist(u domain.User) (domain.Journalist, bool) {
	j, ok := u.(domain.Journalist)
	return j, ok
}

// AsAdmin narrows u to an Admin.
func AsAdmin(u domain.User) (domain.Admin, bool) {
	a, ok := u.(domain.Admin)
	return a, ok
}

// AsDraft narrows s to a Draft.
func AsDraft(s domain.Status) (domain.Draft, bool) {
	d, ok := s.(domain.Draft)
	return d, ok
}

// AsPublished narrows s to a Published status.
func AsPublished(s domain.Status) (domain.Published, bool) {
	p, ok := s.(domain.Published)
	return p, ok
}

// AsArchived narrows s to an Archived status.
func AsArchived(s domain.Status) (domain.Archived, bool) {
	a, ok := s.(domain.Archived)
	return a, ok
}

// AsArticle narrows c to an Article.
func AsArticle(c domain.Content) (domain.Article, bool) {
	a, ok := c.(domain.Article)
	return a, ok
}

// AsVideo narrows c to a Video.
func AsVideo(c domain.Content) (domain.Video, bool) {
	v, ok := c.(domain.Video)
	return v, ok
}

// AsAudio narrows c to an Audio item.
func AsAudio(c domain.Content) (domain.Audio, bool) {
	a, ok := c.(domain.Audio)
	return a, ok
}
