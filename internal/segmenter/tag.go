package segmenter

import (
	"strings"

	"golang.org/x/net/html"
)

// TagFormat controls how open-tag strings are rendered into chunk markup.
type TagFormat int

const (
	// FormatBare renders open tags without attributes: <a>.
	FormatBare TagFormat = iota
	// FormatWithAttributes keeps the original attributes: <a href="#">.
	FormatWithAttributes
)

// Tag is an open element on the segmenter stack. Name and attributes never
// change after creation; the three role flags are set at most once per pass.
type Tag struct {
	name  string
	attrs []html.Attribute

	written          bool
	isChunkStart     bool
	isSaveChunkStart bool
}

// NewTag creates a tag with no role flags set.
func NewTag(name string, attrs []html.Attribute) *Tag {
	return &Tag{name: name, attrs: attrs}
}

// Name returns the element name.
func (t *Tag) Name() string { return t.name }

// Attrs returns the element attributes in source order.
func (t *Tag) Attrs() []html.Attribute { return t.attrs }

// Written reports whether the open tag was emitted into the current content chunk.
func (t *Tag) Written() bool { return t.written }

// IsChunkStart reports whether closing this tag finalizes the content chunk.
func (t *Tag) IsChunkStart() bool { return t.isChunkStart }

// IsSaveChunkStart reports whether closing this tag finalizes the save chunk.
func (t *Tag) IsSaveChunkStart() bool { return t.isSaveChunkStart }

// StartTagString renders the open tag.
func (t *Tag) StartTagString(format TagFormat) string {
	return StartTagString(t.name, t.attrs, format)
}

// EndTagString renders the close tag.
func (t *Tag) EndTagString() string {
	return EndTagString(t.name)
}

// StartTagString renders <name> or <name k="v" ...> depending on format.
// Attribute values are escaped so the result can be tokenized again.
func StartTagString(name string, attrs []html.Attribute, format TagFormat) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	if format == FormatWithAttributes {
		for _, a := range attrs {
			b.WriteByte(' ')
			b.WriteString(a.Key)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Val))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')
	return b.String()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText escapes the characters that would otherwise be read back as
// markup. Quotes are left alone since they are only special inside attributes.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EndTagString renders </name>.
func EndTagString(name string) string {
	return "</" + name + ">"
}
