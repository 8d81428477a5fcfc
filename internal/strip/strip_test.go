package strip

import "testing"

func TestLinkStripper(t *testing.T) {
	tests := []struct {
		name       string
		linkTag    string
		input      string
		wantText   string
		wantLinked int
	}{
		{
			name:       "paragraph then link",
			input:      `<p>testp</p><a href="#">test link</a>`,
			wantText:   "testptest link",
			wantLinked: 9,
		},
		{
			name:       "nested links counted once",
			input:      `<p><a>x<a>yy</a>z</a>w</p>`,
			wantText:   "xyyzw",
			wantLinked: 4,
		},
		{
			name:       "entities decoded",
			input:      `<p>a &lt; b &amp; c</p>`,
			wantText:   "a < b & c",
			wantLinked: 0,
		},
		{
			name:       "stray closing link does not go negative",
			input:      `<p></a>text<a>li</a></p>`,
			wantText:   "textli",
			wantLinked: 2,
		},
		{
			name:       "custom link tag",
			linkTag:    "SPAN",
			input:      `<p>plain <span>marked</span> <a>anchor</a></p>`,
			wantText:   "plain marked anchor",
			wantLinked: 6,
		},
		{
			name:       "multibyte characters counted as characters",
			input:      `<p><a>héllo</a></p>`,
			wantText:   "héllo",
			wantLinked: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, linked, err := NewLinkStripper(tt.linkTag).Strip(tt.input)
			if err != nil {
				t.Fatalf("Strip() error = %v", err)
			}
			if text != tt.wantText {
				t.Errorf("Strip() text = %q, want %q", text, tt.wantText)
			}
			if linked != tt.wantLinked {
				t.Errorf("Strip() link length = %d, want %d", linked, tt.wantLinked)
			}
		})
	}
}

func TestNewLinkStripperDefault(t *testing.T) {
	if got := NewLinkStripper("").LinkTag; got != DefaultLinkTag {
		t.Errorf("LinkTag = %q, want %q", got, DefaultLinkTag)
	}
}

func TestPlainStripper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"nested inline", `<h1>Test <b>h1</b></h1>`, "Test h1"},
		{"links are plain text", `<p>see <a href="/x">this</a></p>`, "see this"},
		{"only tags", `<title></title>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlainStripper{}.StripText(tt.input)
			if err != nil {
				t.Fatalf("StripText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("StripText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleaner(t *testing.T) {
	tests := []struct {
		name   string
		unwrap []string
		drop   []string
		input  string
		want   string
	}{
		{
			name:   "unwrap and drop",
			unwrap: []string{"b"},
			drop:   []string{"script"},
			input:  `<p class="x">Hi <b>there</b><script>evil()</script><br></p>`,
			want:   `<p class="x">Hi there<br></p>`,
		},
		{
			name:  "text stays escaped",
			input: `<p>a &lt; b, it's "ok"</p>`,
			want:  `<p>a &lt; b, it's "ok"</p>`,
		},
		{
			name:  "nested dropped elements",
			drop:  []string{"div"},
			input: `<body><div>a<div>b</div>c</div>d</body>`,
			want:  `<body>d</body>`,
		},
		{
			name:   "unwrap keeps nested content",
			unwrap: []string{"span", "a"},
			input:  `<p><span>one <a href="#">two</a></span> three</p>`,
			want:   `<p>one two three</p>`,
		},
		{
			name:  "raw text kept verbatim",
			input: `<style>a > b {}</style>`,
			want:  `<style>a > b {}</style>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCleaner(tt.unwrap, tt.drop).Clean(tt.input)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanerReusable(t *testing.T) {
	c := NewCleaner(nil, []string{"nav"})
	first, _ := c.Clean(`<nav>menu</nav><p>one</p>`)
	second, _ := c.Clean(`<p>two</p>`)

	if first != "<p>one</p>" || second != "<p>two</p>" {
		t.Errorf("Clean() passes leaked state: %q, %q", first, second)
	}
}
