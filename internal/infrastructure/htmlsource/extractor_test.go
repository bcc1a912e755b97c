package htmlsource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"ContentDesk/internal/domain"
	"ContentDesk/internal/guard"
)

func TestExtractArticle(t *testing.T) {
	t.Parallel()

	html := `
	<article>
	  <h1>Breaking   News</h1>
	  <a rel="author" href="/people/jd">John Doe</a>
	  <p>One two three.</p>
	  <p>Four five.</p>
	</article>`

	shape, err := ExtractShape(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ExtractShape error: %v", err)
	}

	if shape.Headline == nil || *shape.Headline != "Breaking News" {
		t.Fatalf("unexpected headline: %v", shape.Headline)
	}
	if shape.Author == nil || *shape.Author != "John Doe" {
		t.Fatalf("unexpected author: %v", shape.Author)
	}
	if shape.WordCount == nil || *shape.WordCount != 5 {
		t.Fatalf("unexpected word count: %v", shape.WordCount)
	}
	if shape.Title != nil || shape.Duration != nil {
		t.Fatalf("article should carry no timed fields: %v", shape.Present())
	}

	content, err := guard.DefaultSet().Resolve(shape)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if content.Kind() != domain.KindArticle {
		t.Fatalf("expected article, got %s", content.Kind())
	}
}

func TestExtractWordCountAttributeWins(t *testing.T) {
	t.Parallel()

	html := `<article data-word-count="500"><h1>H</h1><span class="byline">A</span><p>short</p></article>`
	shape, err := ExtractShape(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ExtractShape error: %v", err)
	}
	if *shape.WordCount != 500 {
		t.Fatalf("expected 500 words, got %d", *shape.WordCount)
	}
}

func TestExtractVideoWithCaptions(t *testing.T) {
	t.Parallel()

	html := `
	<figure>
	  <video src="/r.mp4" data-duration="120">
	    <track kind="captions" label="Full transcript" src="/r.vtt">
	  </video>
	  <figcaption>News Report</figcaption>
	</figure>`

	shape, err := ExtractShape(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ExtractShape error: %v", err)
	}

	content, err := guard.DefaultSet().Resolve(shape)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := domain.Video{Title: "News Report", Duration: 120, Transcript: "Full transcript"}
	if content != want {
		t.Fatalf("unexpected content: %#v", content)
	}
}

func TestExtractAudioWithSeries(t *testing.T) {
	t.Parallel()

	html := `<audio title="Podcast Episode" data-duration="1800" data-series="Today"></audio>`
	shape, err := ExtractShape(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ExtractShape error: %v", err)
	}

	content, err := guard.DefaultSet().Resolve(shape)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := domain.Audio{Title: "Podcast Episode", Duration: 1800, Series: "Today"}
	if content != want {
		t.Fatalf("unexpected content: %#v", content)
	}
}

func TestExtractExplicitKind(t *testing.T) {
	t.Parallel()

	html := `<section data-kind="Video"><video title="Clip" data-duration="30"></video></section>`
	shape, err := ExtractShape(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ExtractShape error: %v", err)
	}
	if shape.Kind != domain.KindVideo {
		t.Fatalf("expected explicit video kind, got %q", shape.Kind)
	}
}

func TestExtractRejectsBadNumbers(t *testing.T) {
	t.Parallel()

	_, err := ExtractShape(strings.NewReader(`<video title="x" data-duration="two minutes"></video>`))
	if err == nil {
		t.Fatal("expected error for non-numeric duration")
	}
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("unexpected error kind: %v", err)
	}
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
	<h1 id="bbc-headline"> Headline </h1>
	<p id="bbc-byline">By Jane</p>`))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	texts, ok := FindByID(doc, "bbc-headline", "bbc-byline")
	if !ok {
		t.Fatal("expected both elements to be found")
	}
	if texts[0] != "Headline" || texts[1] != "By Jane" {
		t.Fatalf("unexpected texts: %q", texts)
	}

	if _, ok := FindByID(doc, "bbc-headline", "bbc-content"); ok {
		t.Fatal("expected missing element to fail the lookup")
	}
	if _, ok := FindByID(nil, "x"); ok {
		t.Fatal("expected nil document to fail the lookup")
	}
}

func TestExtractFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.html")
	if err := os.WriteFile(path, []byte(`<audio title="T" data-duration="5"></audio>`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	shape, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if *shape.Title != "T" {
		t.Fatalf("unexpected title: %v", *shape.Title)
	}

	if _, err := ExtractFile(filepath.Join(dir, "missing.html")); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
