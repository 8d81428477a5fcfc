// Package tokenizer turns HTML into a flat sequence of start-tag, end-tag and
// text events delivered to a Handler.
package tokenizer

import "golang.org/x/net/html"

// Handler receives tokenizer events in document order. Returning an error
// aborts the pass.
type Handler interface {
	StartTag(name string, attrs []html.Attribute) error
	EndTag(name string) error
	Text(data string) error
}

// voidElements never have an end tag, so both drivers report them as an
// immediately closed element.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// IsVoid reports whether name is an HTML void element.
func IsVoid(name string) bool {
	return voidElements[name]
}

// rawTextElements hold content the tokenizer does not entity-decode.
var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

// IsRawText reports whether text inside name is delivered without entity
// decoding. Such text must be written back verbatim.
func IsRawText(name string) bool {
	return rawTextElements[name]
}
