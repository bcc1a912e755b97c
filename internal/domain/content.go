package domain

// ContentKind names a member of the content family.
type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindVideo   ContentKind = "video"
	KindAudio   ContentKind = "audio"
)

// Content is a closed set: Article, Video and Audio are its only members.
type Content interface {
	Kind() ContentKind
	content()
}

// Article is written content.
type Article struct {
	Headline  string
	WordCount int
	Author    string
}

// Video is filmed content. Transcript is empty when none was provided.
type Video struct {
	Title      string
	Duration   int // seconds
	Transcript string
}

// Audio is recorded content. Series is empty for standalone episodes.
type Audio struct {
	Title    string
	Duration int // seconds
	Series   string
}

func (Article) Kind() ContentKind { return KindArticle }
func (Video) Kind() ContentKind   { return KindVideo }
func (Audio) Kind() ContentKind   { return KindAudio }

func (Article) content() {}
func (Video) content()   {}
func (Audio) content()   {}

// Content field names, shared by ContentShape and the variant registry.
const (
	FieldHeadline   = "headline"
	FieldWordCount  = "wordCount"
	FieldAuthor     = "author"
	FieldTitle      = "title"
	FieldDuration   = "duration"
	FieldTranscript = "transcript"
	FieldSeries     = "series"
)

// ContentShape is untagged content as it arrives from a boundary. Every field
// is optional; nil means absent. Kind is set only when the source carried an
// explicit tag.
type ContentShape struct {
	Kind       ContentKind
	Headline   *string
	WordCount  *int
	Author     *string
	Title      *string
	Duration   *int
	Transcript *string
	Series     *string
}

// Has reports whether the named field is present on the shape.
func (s ContentShape) Has(field string) bool {
	switch field {
	case FieldHeadline:
		return s.Headline != nil
	case FieldWordCount:
		return s.WordCount != nil
	case FieldAuthor:
		return s.Author != nil
	case FieldTitle:
		return s.Title != nil
	case FieldDuration:
		return s.Duration != nil
	case FieldTranscript:
		return s.Transcript != nil
	case FieldSeries:
		return s.Series != nil
	default:
		return false
	}
}

// Present lists the fields set on the shape in registry order.
func (s ContentShape) Present() []string {
	all := []string{FieldHeadline, FieldWordCount, FieldAuthor, FieldTitle, FieldDuration, FieldTranscript, FieldSeries}
	out := make([]string, 0, len(all))
	for _, f := range all {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// ShapeOf flattens typed content back into a tagged shape.
func ShapeOf(c Content) ContentShape {
	switch v := c.(type) {
	case Article:
		return ContentShape{Kind: KindArticle, Headline: &v.Headline, WordCount: &v.WordCount, Author: &v.Author}
	case Video:
		s := ContentShape{Kind: KindVideo, Title: &v.Title, Duration: &v.Duration}
		if v.Transcript != "" {
			s.Transcript = &v.Transcript
		}
		return s
	case Audio:
		s := ContentShape{Kind: KindAudio, Title: &v.Title, Duration: &v.Duration}
		if v.Series != "" {
			s.Series = &v.Series
		}
		return s
	default:
		panic(Unhandled(FamilyContent, c))
	}
}
