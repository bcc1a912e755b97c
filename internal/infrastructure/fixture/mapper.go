package fixture

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ContentDesk/internal/domain"
	"ContentDesk/internal/infrastructure/htmlsource"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02"}

// MapRequest validates one DTO against the variant registry and converts it.
// prefix is prepended to field paths in errors, e.g. "requests[2]".
func MapRequest(path, prefix string, yr YAMLRequest) (domain.Request, error) {
	content, err := mapContent(path, join(prefix, "content"), yr.Content)
	if err != nil {
		return domain.Request{}, err
	}

	status, err := mapStatus(path, join(prefix, "status"), yr.Status)
	if err != nil {
		return domain.Request{}, err
	}

	user, err := mapUser(path, join(prefix, "user"), yr.User)
	if err != nil {
		return domain.Request{}, err
	}

	return domain.Request{
		ID:      strings.TrimSpace(yr.ID),
		Content: content,
		Status:  status,
		User:    user,
	}, nil
}

func mapContent(path, prefix string, yc YAMLContent) (domain.ContentShape, error) {
	var shape domain.ContentShape

	switch {
	case yc.HTMLFile != "":
		file := yc.HTMLFile
		if !filepath.IsAbs(file) && path != "" {
			file = filepath.Join(filepath.Dir(path), file)
		}
		extracted, err := htmlsource.ExtractFile(file)
		if err != nil {
			return shape, wrapField(path, join(prefix, "htmlFile"), err)
		}
		shape = extracted
	case strings.TrimSpace(yc.HTML) != "":
		extracted, err := htmlsource.ExtractShape(strings.NewReader(yc.HTML))
		if err != nil {
			return shape, wrapField(path, join(prefix, "html"), err)
		}
		shape = extracted
	}

	if kind := strings.ToLower(strings.TrimSpace(yc.Kind)); kind != "" {
		shape.Kind = domain.ContentKind(kind)
	}
	if shape.Kind != "" && !domain.ContentFamily().Has(string(shape.Kind)) {
		return shape, unknownVariant(path, join(prefix, "kind"), domain.FamilyContent, string(shape.Kind))
	}

	overlay(&shape.Headline, yc.Headline)
	overlay(&shape.WordCount, yc.WordCount)
	overlay(&shape.Author, yc.Author)
	overlay(&shape.Title, yc.Title)
	overlay(&shape.Duration, yc.Duration)
	overlay(&shape.Transcript, yc.Transcript)
	overlay(&shape.Series, yc.Series)

	if shape.WordCount != nil && *shape.WordCount < 0 {
		return shape, invalidField(path, join(prefix, domain.FieldWordCount), "must not be negative")
	}
	if shape.Duration != nil && *shape.Duration < 0 {
		return shape, invalidField(path, join(prefix, domain.FieldDuration), "must not be negative")
	}
	if len(shape.Present()) == 0 {
		return shape, invalidField(path, prefix, "content has no fields")
	}

	return shape, nil
}

func mapStatus(path, prefix string, ys YAMLStatus) (domain.Status, error) {
	tag := strings.ToLower(strings.TrimSpace(ys.Status))
	if tag == "" {
		return nil, invalidField(path, join(prefix, domain.FieldStatus), "status is required")
	}

	variant, ok := domain.StatusFamily().Variant(tag)
	if !ok {
		return nil, unknownVariant(path, join(prefix, domain.FieldStatus), domain.FamilyStatus, tag)
	}
	present := map[string]bool{
		domain.FieldLastModified: ys.LastModified != "",
		domain.FieldPublishedAt:  ys.PublishedAt != "",
		domain.FieldViews:        ys.Views != nil,
		domain.FieldArchivedAt:   ys.ArchivedAt != "",
		domain.FieldReason:       ys.Reason != nil && strings.TrimSpace(*ys.Reason) != "",
	}
	if err := requirePresent(path, prefix, variant, present); err != nil {
		return nil, err
	}

	switch domain.StatusTag(tag) {
	case domain.StatusDraft:
		at, err := parseTime(path, join(prefix, domain.FieldLastModified), ys.LastModified)
		if err != nil {
			return nil, err
		}
		return domain.Draft{LastModified: at}, nil
	case domain.StatusPublished:
		at, err := parseTime(path, join(prefix, domain.FieldPublishedAt), ys.PublishedAt)
		if err != nil {
			return nil, err
		}
		if *ys.Views < 0 {
			return nil, invalidField(path, join(prefix, domain.FieldViews), "must not be negative")
		}
		return domain.Published{PublishedAt: at, Views: *ys.Views}, nil
	case domain.StatusArchived:
		at, err := parseTime(path, join(prefix, domain.FieldArchivedAt), ys.ArchivedAt)
		if err != nil {
			return nil, err
		}
		return domain.Archived{ArchivedAt: at, Reason: strings.TrimSpace(*ys.Reason)}, nil
	default:
		return nil, unknownVariant(path, join(prefix, domain.FieldStatus), domain.FamilyStatus, tag)
	}
}

func mapUser(path, prefix string, yu YAMLUser) (domain.User, error) {
	role := strings.ToLower(strings.TrimSpace(yu.Role))
	if role == "" {
		return nil, invalidField(path, join(prefix, domain.FieldRole), "role is required")
	}

	variant, ok := domain.RoleFamily().Variant(role)
	if !ok {
		return nil, unknownVariant(path, join(prefix, domain.FieldRole), domain.FamilyRole, role)
	}
	present := map[string]bool{
		domain.FieldID:          yu.ID != nil,
		domain.FieldName:        strings.TrimSpace(yu.Name) != "",
		domain.FieldEmail:       strings.TrimSpace(yu.Email) != "",
		domain.FieldRole:        true,
		domain.FieldSections:    yu.Sections != nil,
		domain.FieldArticles:    yu.Articles != nil,
		domain.FieldPermissions: yu.Permissions != nil,
	}
	if err := requirePresent(path, prefix, variant, present); err != nil {
		return nil, err
	}

	profile := domain.Profile{
		ID:    *yu.ID,
		Name:  strings.TrimSpace(yu.Name),
		Email: strings.TrimSpace(yu.Email),
	}

	switch domain.Role(role) {
	case domain.RoleEditor:
		return domain.Editor{Profile: profile, Sections: yu.Sections}, nil
	case domain.RoleJournalist:
		if *yu.Articles < 0 {
			return nil, invalidField(path, join(prefix, domain.FieldArticles), "must not be negative")
		}
		return domain.Journalist{Profile: profile, Articles: *yu.Articles}, nil
	case domain.RoleAdmin:
		return domain.Admin{Profile: profile, Permissions: yu.Permissions}, nil
	default:
		return nil, unknownVariant(path, join(prefix, domain.FieldRole), domain.FamilyRole, role)
	}
}

func requirePresent(path, prefix string, variant domain.Variant, present map[string]bool) error {
	for _, name := range variant.Required() {
		if !present[name] {
			return invalidField(path, join(prefix, name), fmt.Sprintf("%s is required for %s", name, variant.Tag))
		}
	}
	return nil
}

func parseTime(path, field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalidField(path, field, fmt.Sprintf("%q is not an RFC3339 timestamp or YYYY-MM-DD date", raw))
}

func overlay[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	if field == "" {
		return prefix
	}
	return prefix + "." + field
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:    "fixture.map",
		Kind:  domain.KindInvalidInput,
		Path:  path,
		Field: field,
		Err:   fmt.Errorf("%s: %w", msg, domain.ErrInvalidInput),
	}
}

func unknownVariant(path, field string, family domain.FamilyName, tag string) error {
	f, _ := domain.LookupFamily(family)
	return &domain.OpError{
		Op:    "fixture.map",
		Kind:  domain.KindUnknownVariant,
		Path:  path,
		Field: field,
		Err:   fmt.Errorf("%s %q is not one of [%s]: %w", family, tag, strings.Join(f.Tags(), ", "), domain.ErrUnknownVariant),
	}
}

func wrapField(path, field string, err error) error {
	var oe *domain.OpError
	if errors.As(err, &oe) {
		cp := *oe
		cp.Path = path
		cp.Field = field
		return &cp
	}
	return &domain.OpError{Op: "fixture.map", Kind: domain.KindInvalidInput, Path: path, Field: field, Err: err}
}
