package domain

import "slices"

// FamilyName identifies a variant family.
type FamilyName string

const (
	FamilyContent FamilyName = "content"
	FamilyStatus  FamilyName = "status"
	FamilyRole    FamilyName = "role"
)

// Field describes one field of a variant schema.
type Field struct {
	Name     string
	Required bool
}

// Variant is the schema of a single family member.
type Variant struct {
	Tag    string
	Fields []Field
}

// Required lists the names of the mandatory fields.
func (v Variant) Required() []string {
	out := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Family is a closed set of variants sharing a discriminant.
//
// Structural families carry no tag on the wire; their members are told apart
// by field presence, and Variants is listed in guard priority order.
type Family struct {
	Name         FamilyName
	Discriminant string
	Structural   bool
	Shared       []Field
	Variants     []Variant
}

// Tags returns the valid discriminant values in registry order.
func (f Family) Tags() []string {
	tags := make([]string, len(f.Variants))
	for i, v := range f.Variants {
		tags[i] = v.Tag
	}
	return tags
}

// Variant returns the schema for tag, including shared fields.
func (f Family) Variant(tag string) (Variant, bool) {
	for _, v := range f.Variants {
		if v.Tag == tag {
			fields := make([]Field, 0, len(f.Shared)+len(v.Fields))
			fields = append(fields, f.Shared...)
			fields = append(fields, v.Fields...)
			return Variant{Tag: v.Tag, Fields: fields}, true
		}
	}
	return Variant{}, false
}

// Has reports whether tag is a member of the family.
func (f Family) Has(tag string) bool {
	_, ok := f.Variant(tag)
	return ok
}

func (f Family) clone() Family {
	out := f
	out.Shared = slices.Clone(f.Shared)
	out.Variants = make([]Variant, len(f.Variants))
	for i, v := range f.Variants {
		out.Variants[i] = Variant{Tag: v.Tag, Fields: slices.Clone(v.Fields)}
	}
	return out
}

var contentFamily = Family{
	Name:         FamilyContent,
	Discriminant: "kind",
	Structural:   true,
	Variants: []Variant{
		{Tag: string(KindArticle), Fields: []Field{
			{Name: FieldHeadline, Required: true},
			{Name: FieldWordCount, Required: true},
			{Name: FieldAuthor, Required: true},
		}},
		{Tag: string(KindVideo), Fields: []Field{
			{Name: FieldTitle, Required: true},
			{Name: FieldDuration, Required: true},
			{Name: FieldTranscript},
		}},
		{Tag: string(KindAudio), Fields: []Field{
			{Name: FieldTitle, Required: true},
			{Name: FieldDuration, Required: true},
			{Name: FieldSeries},
		}},
	},
}

var statusFamily = Family{
	Name:         FamilyStatus,
	Discriminant: FieldStatus,
	Variants: []Variant{
		{Tag: string(StatusDraft), Fields: []Field{
			{Name: FieldLastModified, Required: true},
		}},
		{Tag: string(StatusPublished), Fields: []Field{
			{Name: FieldPublishedAt, Required: true},
			{Name: FieldViews, Required: true},
		}},
		{Tag: string(StatusArchived), Fields: []Field{
			{Name: FieldArchivedAt, Required: true},
			{Name: FieldReason, Required: true},
		}},
	},
}

var roleFamily = Family{
	Name:         FamilyRole,
	Discriminant: FieldRole,
	Shared: []Field{
		{Name: FieldID, Required: true},
		{Name: FieldName, Required: true},
		{Name: FieldEmail, Required: true},
		{Name: FieldRole, Required: true},
	},
	Variants: []Variant{
		{Tag: string(RoleEditor), Fields: []Field{
			{Name: FieldSections, Required: true},
		}},
		{Tag: string(RoleJournalist), Fields: []Field{
			{Name: FieldArticles, Required: true},
		}},
		{Tag: string(RoleAdmin), Fields: []Field{
			{Name: FieldPermissions, Required: true},
		}},
	},
}

// ContentFamily returns the content schema. Variants are in guard priority order.
func ContentFamily() Family { return contentFamily.clone() }

// StatusFamily returns the lifecycle schema.
func StatusFamily() Family { return statusFamily.clone() }

// RoleFamily returns the user role schema.
func RoleFamily() Family { return roleFamily.clone() }

// Families returns every registered family.
func Families() []Family {
	return []Family{ContentFamily(), StatusFamily(), RoleFamily()}
}

// LookupFamily finds a family by name.
func LookupFamily(name FamilyName) (Family, bool) {
	for _, f := range Families() {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}
