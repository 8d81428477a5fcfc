package tokenizer

import (
	"io"

	"golang.org/x/net/html"
)

// Stream drives h with the raw token stream of r. No tree is built and no
// nesting is repaired: end tags are reported exactly as written, apart from
// void elements which are closed immediately and whose stray end tags are
// dropped. Comments and doctypes are skipped.
func Stream(r io.Reader, h Handler) error {
	z := html.NewTokenizer(r)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, attrs := readTag(z)
			if err := h.StartTag(name, attrs); err != nil {
				return err
			}
			if tt == html.SelfClosingTagToken || IsVoid(name) {
				if err := h.EndTag(name); err != nil {
					return err
				}
			}

		case html.EndTagToken:
			tn, _ := z.TagName()
			name := string(tn)
			if IsVoid(name) {
				continue
			}
			if err := h.EndTag(name); err != nil {
				return err
			}

		case html.TextToken:
			if err := h.Text(string(z.Text())); err != nil {
				return err
			}
		}
	}
}

// readTag copies the current tag name and attributes out of the tokenizer,
// whose buffers are reused on the next call to Next.
func readTag(z *html.Tokenizer) (string, []html.Attribute) {
	tn, hasAttr := z.TagName()
	name := string(tn)

	var attrs []html.Attribute
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return name, attrs
}
