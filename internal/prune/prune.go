// Package prune removes subtrees from a parsed document before segmentation.
package prune

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmltext/internal/errs"
)

// Pruner removes every element matched by a set of CSS selectors or XPath
// expressions. Expressions are compiled once in New; a Pruner is safe for
// concurrent use on different documents.
type Pruner struct {
	selectors []cascadia.Selector
	xpaths    []*xpath.Expr
}

// New compiles selectors and XPath expressions. Blank entries are ignored.
// A syntax error in any entry is a validation error.
func New(selectors, xpaths []string) (*Pruner, error) {
	p := &Pruner{}
	for _, raw := range selectors {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		sel, err := cascadia.Compile(raw)
		if err != nil {
			return nil, errs.WrapValidationError(fmt.Errorf("%w: %v", errs.ErrInvalidOptions, err),
				"prune.New", fmt.Sprintf("invalid selector %q", raw))
		}
		p.selectors = append(p.selectors, sel)
	}
	for _, raw := range xpaths {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		expr, err := xpath.Compile(raw)
		if err != nil {
			return nil, errs.WrapValidationError(fmt.Errorf("%w: %v", errs.ErrInvalidOptions, err),
				"prune.New", fmt.Sprintf("invalid xpath %q", raw))
		}
		p.xpaths = append(p.xpaths, expr)
	}
	return p, nil
}

// Empty reports whether the pruner has nothing to remove.
func (p *Pruner) Empty() bool {
	return p == nil || (len(p.selectors) == 0 && len(p.xpaths) == 0)
}

// Prune detaches matched elements from root and returns how many matches
// were removed. Selectors run before XPath expressions, each against the
// tree left by the previous one.
func (p *Pruner) Prune(root *html.Node) int {
	if p.Empty() || root == nil {
		return 0
	}

	removed := 0
	doc := goquery.NewDocumentFromNode(root)
	for _, sel := range p.selectors {
		matched := doc.FindMatcher(sel)
		removed += matched.Length()
		matched.Remove()
	}

	for _, expr := range p.xpaths {
		for _, n := range htmlquery.QuerySelectorAll(root, expr) {
			if n.Parent == nil || n == root {
				continue
			}
			n.Parent.RemoveChild(n)
			removed++
		}
	}
	return removed
}
