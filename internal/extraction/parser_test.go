package extraction

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mrjoshuak/htmltext/internal/errs"
	"github.com/mrjoshuak/htmltext/internal/scoring"
	"github.com/mrjoshuak/htmltext/types"
)

const scenarioB = `<html><head><title>Test title</title></head><body><p><b>test paragraph</b>test paragraph</p><p>test paragraph</p></body></html>`

const navPage = `<body><nav><a href="/">Home</a> <a href="/about">About</a></nav>` +
	`<article><p>First sentence, with a comma. Second one!</p></article></body>`

func newParser(t *testing.T, modify func(*types.ExtractionOptions)) *Parser {
	t.Helper()
	opts := types.DefaultOptions()
	if modify != nil {
		modify(&opts)
	}
	p, err := NewParser(opts)
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	return p
}

func TestFeedDefaults(t *testing.T) {
	p := newParser(t, nil)
	if err := p.Feed(scenarioB); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	if got, want := p.Content(), "test paragraph test paragraph test paragraph"; got != want {
		t.Errorf("Content() = %q, want %q", got, want)
	}
	want := map[string][]string{"title": {"Test title"}}
	if got := p.SavedTags(); !reflect.DeepEqual(got, want) {
		t.Errorf("SavedTags() = %v, want %v", got, want)
	}

	markups := make([]string, 0, 3)
	for _, c := range p.Chunks() {
		markups = append(markups, c.Markup)
	}
	wantMarkups := []string{"<b>test paragraph</b>", "<p>test paragraph</p>", "<p>test paragraph</p>"}
	if !reflect.DeepEqual(markups, wantMarkups) {
		t.Errorf("chunk markup = %q, want %q", markups, wantMarkups)
	}
}

func TestMinAllowedWeight(t *testing.T) {
	tests := []struct {
		name      string
		minWeight float64
		want      string
	}{
		{"all chunks", 0, "Home About First sentence, with a comma. Second one!"},
		{"prose only", 0.5, "First sentence, with a comma. Second one!"},
		{"nothing", 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, func(o *types.ExtractionOptions) { o.MinAllowedWeight = tt.minWeight })
			if err := p.Feed(navPage); err != nil {
				t.Fatalf("Feed() error = %v", err)
			}
			if got := p.Content(); got != tt.want {
				t.Errorf("Content() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChunkReports(t *testing.T) {
	p := newParser(t, func(o *types.ExtractionOptions) { o.PreserveAttributes = true })
	if err := p.Feed(`<body><p class="x">Hello, world.</p></body>`); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	reports := p.Chunks()
	if len(reports) != 1 {
		t.Fatalf("Chunks() len = %d, want 1", len(reports))
	}
	r := reports[0]
	if r.Markup != `<p class="x">Hello, world.</p>` {
		t.Errorf("Markup = %q", r.Markup)
	}
	if r.Text != "Hello, world." || r.LengthWithoutTags != 13 || r.PunctuationCount != 2 || r.LinkLength != 0 {
		t.Errorf("report = %+v", r)
	}
	if r.LengthWithTags != len(`<p class="x">Hello, world.</p>`) {
		t.Errorf("LengthWithTags = %d", r.LengthWithTags)
	}
	if !r.Accepted || r.Failed || r.Err != nil {
		t.Errorf("report flags = accepted %v failed %v err %v", r.Accepted, r.Failed, r.Err)
	}
	if r.Weight <= 0 {
		t.Errorf("Weight = %v, want > 0", r.Weight)
	}

	if res := p.Result(); res.Chunks != nil {
		t.Error("Result() should leave chunks out unless IncludeChunks is set")
	}
}

func TestFailedChunkExcluded(t *testing.T) {
	p := newParser(t, nil)
	if err := p.Feed(`<body><p>Kept, yes.</p></body>`); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	broken := scoring.NewChunk("<p>Broken, but punctuated.</p>")
	p.chunks = append(p.chunks, scoredChunk{chunk: broken, err: errors.New("boom")})

	if got := p.Content(); got != "Kept, yes." {
		t.Errorf("Content() = %q, want only the scored chunk", got)
	}
	reports := p.Chunks()
	if !reports[1].Failed || reports[1].Accepted {
		t.Errorf("failed chunk report = %+v", reports[1])
	}
}

func TestEmptySaveDropped(t *testing.T) {
	p := newParser(t, nil)
	if err := p.Feed(`<html><head><title></title></head><body><p>x.</p></body></html>`); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	saved := p.SavedTags()
	entries, ok := saved["title"]
	if !ok {
		t.Fatal("title key should stay in the save map")
	}
	if len(entries) != 0 {
		t.Errorf("title entries = %q, want none", entries)
	}
}

func TestSaveUnderRemoval(t *testing.T) {
	p := newParser(t, func(o *types.ExtractionOptions) {
		o.TagsToSave = []string{"h1"}
		o.TagsToRemove = []string{"header"}
	})
	if err := p.Feed(`<body><header><h1>Site <b>name</b></h1></header><p>Body, text.</p></body>`); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	if got := p.SavedTags()["h1"]; !reflect.DeepEqual(got, []string{"Site name"}) {
		t.Errorf("saved h1 = %q", got)
	}
	if got := p.Content(); got != "Body, text." {
		t.Errorf("Content() = %q, removed header leaked", got)
	}
}

func TestFeedResets(t *testing.T) {
	p := newParser(t, nil)
	if err := p.Feed(scenarioB); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if err := p.Feed(`<body><p>Second, document.</p></body>`); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	if got := p.Content(); got != "Second, document." {
		t.Errorf("Content() = %q, want only the second document", got)
	}
	if got := p.SavedTags(); len(got) != 0 {
		t.Errorf("SavedTags() = %v, want empty", got)
	}
}

func TestStreamTokenizer(t *testing.T) {
	p := newParser(t, func(o *types.ExtractionOptions) { o.Tokenizer = types.TokenizerStream })

	if err := p.Feed("<!DOCTYPE html>\n<div><p>Hello, world.</p><br></div>\n"); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if got := p.Content(); got != "Hello, world." {
		t.Errorf("Content() = %q", got)
	}

	err := p.Feed(`<div><p>Hello, world.</div>`)
	if !errs.IsSegmentationError(err) || !errors.Is(err, errs.ErrUnbalancedTag) {
		t.Fatalf("Feed() error = %v, want unbalanced segmentation error", err)
	}
	if p.Content() != "" || len(p.Chunks()) != 0 {
		t.Error("failed pass should leave the parser empty")
	}
}

func TestTreeTokenizerRepairsNesting(t *testing.T) {
	p := newParser(t, nil)
	if err := p.Feed(`<div><p>Hello, world.</div></span>`); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if got := p.Content(); got != "Hello, world." {
		t.Errorf("Content() = %q", got)
	}
}

func TestPruning(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*types.ExtractionOptions)
	}{
		{"selector", func(o *types.ExtractionOptions) { o.RemoveSelectors = []string{"nav"} }},
		{"xpath", func(o *types.ExtractionOptions) { o.RemoveXPath = []string{"//nav"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(t, tt.modify)
			if err := p.Feed(navPage); err != nil {
				t.Fatalf("Feed() error = %v", err)
			}
			if got, want := p.Content(), "First sentence, with a comma. Second one!"; got != want {
				t.Errorf("Content() = %q, want %q", got, want)
			}
		})
	}
}

func TestNormalizeUnicode(t *testing.T) {
	doc := "<html><head><title>ﬁrst</title></head><body><p>ﬁle done.</p></body></html>"

	p := newParser(t, func(o *types.ExtractionOptions) { o.NormalizeUnicode = true })
	if err := p.Feed(doc); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if got := p.Content(); got != "file done." {
		t.Errorf("Content() = %q", got)
	}
	if got := p.SavedTags()["title"]; !reflect.DeepEqual(got, []string{"first"}) {
		t.Errorf("saved title = %q", got)
	}

	plain := newParser(t, nil)
	if err := plain.Feed(doc); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if got := plain.Content(); got != "ﬁle done." {
		t.Errorf("Content() without normalization = %q", got)
	}
}

func TestNormalizeUnicodeStripsControlChars(t *testing.T) {
	doc := "<html><head><title>Bell\x07 tower</title></head><body><p>Ring\x07 it, twice.</p></body></html>"

	p := newParser(t, func(o *types.ExtractionOptions) { o.NormalizeUnicode = true })
	if err := p.Feed(doc); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if got, want := p.Content(), "Ring it, twice."; got != want {
		t.Errorf("Content() = %q, want %q", got, want)
	}
	if got := p.SavedTags()["title"]; !reflect.DeepEqual(got, []string{"Bell tower"}) {
		t.Errorf("saved title = %q", got)
	}
}

func TestSaveChunkCleanerNormalization(t *testing.T) {
	saved := map[string][]string{"h1": {"<h1>ﬁne\x07 \t print</h1>"}}

	tests := []struct {
		name      string
		normalize bool
		want      []string
	}{
		{"whitespace only", false, []string{"ﬁne\x07 print"}},
		{"control chars and NFKC", true, []string{"fine print"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSaveChunkCleaner(tt.normalize).Clean(saved)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			if !reflect.DeepEqual(got["h1"], tt.want) {
				t.Errorf("Clean() h1 = %q, want %q", got["h1"], tt.want)
			}
		})
	}
}

func TestMaxBufferSize(t *testing.T) {
	p := newParser(t, func(o *types.ExtractionOptions) { o.MaxBufferSize = 16 })
	doc := `<p>Way too long, for this limit.</p>`

	for name, feed := range map[string]func() error{
		"Feed":       func() error { return p.Feed(doc) },
		"FeedReader": func() error { return p.FeedReader(strings.NewReader(doc)) },
	} {
		err := feed()
		if !errors.Is(err, errs.ErrDocumentLarge) || !errs.IsValidationError(err) {
			t.Errorf("%s() error = %v, want document too large", name, err)
		}
	}

	if err := p.FeedReader(strings.NewReader(`<p>Small.</p>`)); err != nil {
		t.Errorf("FeedReader() error = %v", err)
	}
}

func TestNewParserValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*types.ExtractionOptions)
	}{
		{"empty link tag", func(o *types.ExtractionOptions) { o.LinkTag = "" }},
		{"empty punctuation", func(o *types.ExtractionOptions) { o.Punctuation = "" }},
		{"negative buffer", func(o *types.ExtractionOptions) { o.MaxBufferSize = -1 }},
		{"negative timeout", func(o *types.ExtractionOptions) { o.Timeout = -1 }},
		{"unknown tokenizer", func(o *types.ExtractionOptions) { o.Tokenizer = types.TokenizerMode(7) }},
		{"selectors in stream mode", func(o *types.ExtractionOptions) {
			o.Tokenizer = types.TokenizerStream
			o.RemoveSelectors = []string{"nav"}
		}},
		{"bad selector", func(o *types.ExtractionOptions) { o.RemoveSelectors = []string{"div["} }},
		{"bad xpath", func(o *types.ExtractionOptions) { o.RemoveXPath = []string{"//div["} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := types.DefaultOptions()
			tt.modify(&opts)
			_, err := NewParser(opts)
			if !errs.IsValidationError(err) || !errors.Is(err, errs.ErrInvalidOptions) {
				t.Errorf("NewParser() error = %v, want invalid options", err)
			}
		})
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	p := newParser(t, func(o *types.ExtractionOptions) { o.Logger = &logger })
	if err := p.Feed(navPage); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"message":"Extraction pass complete"`, `"chunks":3`, `"accepted":3`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %s", out, want)
		}
	}
}

func TestSaveChunkCleaner(t *testing.T) {
	saved := map[string][]string{
		"h1":    {"<h1>Test <b>h1</b></h1>", "<h1> </h1>", "<h1>Second</h1>"},
		"title": {"<title></title>"},
	}
	got, err := NewSaveChunkCleaner(false).Clean(saved)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	want := map[string][]string{"h1": {"Test h1", "Second"}, "title": {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestChunkWeightMatchesScorer(t *testing.T) {
	p := newParser(t, nil)
	if err := p.Feed(`<body><p>Hello, world.</p></body>`); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	want := 0.65 + 0.02 + 1 + (1 - 2.0/13)
	if got := p.Chunks()[0].Weight; math.Abs(got-want) > 1e-9 {
		t.Errorf("Weight = %v, want %v", got, want)
	}
}
