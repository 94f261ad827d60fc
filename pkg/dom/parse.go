package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses markup as the content of a <body> element using the HTML5
// tree construction rules, and returns a fragment holding the result.
// The parser reshapes invalid nesting (e.g. a <div> directly in a <table>)
// exactly like a browser would.
func Parse(markup string) (*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, err
	}
	frag := NewFragment()
	for _, n := range nodes {
		frag.AppendChild(n)
	}
	return frag, nil
}

// ParseInto parses markup and replaces the children of parent with the
// result, like assigning innerHTML.
func ParseInto(parent *html.Node, markup string) error {
	frag, err := Parse(markup)
	if err != nil {
		return err
	}
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		parent.RemoveChild(c)
		c = next
	}
	Append(parent, frag)
	return nil
}
