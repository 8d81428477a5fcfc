package tokenizer

import (
	"io"

	"golang.org/x/net/html"
)

// Parse builds an HTML5 tree from r. The parser repairs nesting the way a
// browser would, so walking the result always yields balanced events.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// Walk replays the subtree rooted at n as tokenizer events. Element nodes
// produce a start tag, their children, then an end tag; text nodes produce
// text. Comments and doctypes are skipped.
func Walk(n *html.Node, h Handler) error {
	switch n.Type {
	case html.DocumentNode:
		return walkChildren(n, h)

	case html.ElementNode:
		if err := h.StartTag(n.Data, n.Attr); err != nil {
			return err
		}
		if err := walkChildren(n, h); err != nil {
			return err
		}
		return h.EndTag(n.Data)

	case html.TextNode:
		return h.Text(n.Data)
	}
	return nil
}

func walkChildren(n *html.Node, h Handler) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := Walk(c, h); err != nil {
			return err
		}
	}
	return nil
}
