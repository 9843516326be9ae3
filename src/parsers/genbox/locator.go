package genbox

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Dialect selects how the document text is parsed.
type Dialect string

const (
	// DialectDocument parses the text as a complete HTML5 document.
	DialectDocument Dialect = "html"
	// DialectFragment parses the text as the content of a <body> element.
	DialectFragment Dialect = "fragment"
)

// LocateTable parses doc and returns the first <table> element in document
// order, or nil when the document has none. Malformed markup is recovered
// the way browsers do; the shape of the table is not checked.
func LocateTable(doc string, dialect Dialect) (*html.Node, error) {
	roots, err := parseRoots(doc, dialect)
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if t := findFirst(root, atom.Table); t != nil {
			return t, nil
		}
	}
	return nil, nil
}

func parseRoots(doc string, dialect Dialect) ([]*html.Node, error) {
	switch dialect {
	case "", DialectDocument:
		root, err := html.Parse(strings.NewReader(doc))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		return []*html.Node{root}, nil
	case DialectFragment:
		body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		nodes, err := html.ParseFragment(strings.NewReader(doc), body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		return nodes, nil
	default:
		return nil, fmt.Errorf("%w: unknown dialect %q", ErrParseFailure, dialect)
	}
}

// findFirst returns the first element with the given tag in pre-order.
func findFirst(n *html.Node, tag atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll appends every descendant element of n matching one of tags, in
// document order. n itself is not considered.
func findAll(n *html.Node, tags ...atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				for _, t := range tags {
					if c.DataAtom == t {
						out = append(out, c)
						break
					}
				}
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// NodeText returns the concatenated text of every descendant text node,
// without separators.
func NodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
