// Package htmlsource lifts content fields out of HTML markup. It reports which
// fields are present and never decides the content kind; that is left to the
// guard chain.
package htmlsource

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ContentDesk/internal/domain"
)

// ExtractFile opens path and extracts a content shape from it.
func ExtractFile(path string) (domain.ContentShape, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ContentShape{}, &domain.OpError{Op: "htmlsource.open", Kind: domain.KindNotFound, Path: path, Err: err}
	}
	defer f.Close()

	shape, err := ExtractShape(f)
	if err != nil {
		return domain.ContentShape{}, fmt.Errorf("%s: %w", path, err)
	}
	return shape, nil
}

// ExtractShape parses r and extracts a content shape.
func ExtractShape(r io.Reader) (domain.ContentShape, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return domain.ContentShape{}, fmt.Errorf("parse document: %w", err)
	}
	return ShapeFromDocument(doc)
}

// ShapeFromDocument extracts a content shape from a parsed document.
//
//	kind        data-kind on any element
//	headline    [itemprop=headline], else article h1
//	author      [rel=author], .byline, [itemprop=author]
//	wordCount   data-word-count, else words in article paragraphs
//	title       title attribute on video/audio, figcaption, [itemprop=name]
//	duration    data-duration, in seconds
//	transcript  .transcript text, else the label of a captions track
//	series      data-series
func ShapeFromDocument(doc *goquery.Document) (domain.ContentShape, error) {
	var shape domain.ContentShape

	if kind, ok := doc.Find("[data-kind]").First().Attr("data-kind"); ok {
		shape.Kind = domain.ContentKind(strings.ToLower(strings.TrimSpace(kind)))
	}

	shape.Headline = firstText(doc, "[itemprop=headline]", "article h1")
	shape.Author = firstText(doc, "[rel=author]", ".byline", "[itemprop=author]")

	wordCount, err := intAttr(doc, "data-word-count", domain.FieldWordCount)
	if err != nil {
		return domain.ContentShape{}, err
	}
	if wordCount == nil {
		wordCount = countWords(doc.Find("article p"))
	}
	shape.WordCount = wordCount

	shape.Title = firstAttr(doc, "title", "video[title]", "audio[title]")
	if shape.Title == nil {
		shape.Title = firstText(doc, "figure figcaption", "[itemprop=name]")
	}

	duration, err := intAttr(doc, "data-duration", domain.FieldDuration)
	if err != nil {
		return domain.ContentShape{}, err
	}
	shape.Duration = duration

	shape.Transcript = firstText(doc, ".transcript")
	if shape.Transcript == nil {
		if track := doc.Find(`track[kind="captions"]`).First(); track.Length() > 0 {
			label, _ := track.Attr("label")
			label = strings.TrimSpace(label)
			shape.Transcript = &label
		}
	}

	shape.Series = firstAttr(doc, "data-series", "[data-series]")

	return shape, nil
}

// FindByID returns the trimmed text of every element named by ids, in order.
// It reports false unless all of them exist.
func FindByID(doc *goquery.Document, ids ...string) ([]string, bool) {
	if doc == nil {
		return nil, false
	}
	texts := make([]string, 0, len(ids))
	for _, id := range ids {
		sel := doc.Find(fmt.Sprintf(`[id="%s"]`, strings.ReplaceAll(id, `"`, `\"`))).First()
		if sel.Length() == 0 {
			return nil, false
		}
		texts = append(texts, strings.TrimSpace(sel.Text()))
	}
	return texts, true
}

func firstText(doc *goquery.Document, selectors ...string) *string {
	for _, sel := range selectors {
		found := doc.Find(sel).First()
		if found.Length() == 0 {
			continue
		}
		text := strings.Join(strings.Fields(found.Text()), " ")
		if text != "" {
			return &text
		}
	}
	return nil
}

func firstAttr(doc *goquery.Document, attr string, selectors ...string) *string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr(attr); ok {
			v = strings.TrimSpace(v)
			if v != "" {
				return &v
			}
		}
	}
	return nil
}

func intAttr(doc *goquery.Document, attr, field string) (*int, error) {
	raw := firstAttr(doc, attr, "["+attr+"]")
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil || n < 0 {
		return nil, &domain.OpError{
			Op:    "htmlsource.extract",
			Kind:  domain.KindInvalidInput,
			Field: field,
			Err:   fmt.Errorf("%s=%q is not a non-negative integer: %w", attr, *raw, domain.ErrInvalidInput),
		}
	}
	return &n, nil
}

func countWords(paragraphs *goquery.Selection) *int {
	if paragraphs.Length() == 0 {
		return nil
	}
	total := 0
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		total += len(strings.Fields(p.Text()))
	})
	return &total
}
