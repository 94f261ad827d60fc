package live

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/tether/pkg/dom"
)

// BindingKind identifies the dynamic template node a binding serves.
type BindingKind string

const (
	KindText        BindingKind = "text"
	KindAttribute   BindingKind = "attribute"
	KindComment     BindingKind = "comment"
	KindBlock       BindingKind = "block"
	KindConditional BindingKind = "conditional"
	KindEach        BindingKind = "each"
)

// Binding connects one dynamic template node to the live nodes it controls.
type Binding interface {
	// Kind returns the kind of template node the binding was created for.
	Kind() BindingKind

	// Update re-evaluates the binding against ctx, which must hold the
	// complete new state, and mutates only the nodes the binding owns.
	Update(ctx *Context) error

	// retarget re-points node references using a fragment-to-existing map.
	retarget(nodes map[*html.Node]*html.Node)
}

func swap(nodes map[*html.Node]*html.Node, n *html.Node) *html.Node {
	if to, ok := nodes[n]; ok {
		return to
	}
	return n
}

// TextBinding keeps a text node in sync with an expression.
type TextBinding struct {
	node *html.Node
	expr *Expression
}

// Kind implements Binding.
func (b *TextBinding) Kind() BindingKind { return KindText }

// Node returns the text node the binding currently targets.
func (b *TextBinding) Node() *html.Node { return b.node }

// Update implements Binding.
func (b *TextBinding) Update(ctx *Context) error {
	if data := toString(b.expr.Get(ctx)); data != b.node.Data {
		b.node.Data = data
	}
	return nil
}

func (b *TextBinding) retarget(nodes map[*html.Node]*html.Node) {
	b.node = swap(nodes, b.node)
}

// CommentBinding keeps a comment node in sync with an expression.
type CommentBinding struct {
	node *html.Node
	expr *Expression
}

// Kind implements Binding.
func (b *CommentBinding) Kind() BindingKind { return KindComment }

// Node returns the comment node the binding currently targets.
func (b *CommentBinding) Node() *html.Node { return b.node }

// Update implements Binding.
func (b *CommentBinding) Update(ctx *Context) error {
	if data := toString(b.expr.Get(ctx)); data != b.node.Data {
		b.node.Data = data
	}
	return nil
}

func (b *CommentBinding) retarget(nodes map[*html.Node]*html.Node) {
	b.node = swap(nodes, b.node)
}

// AttributeBinding keeps one attribute of an element in sync with an
// expression. Other attributes of the element are never touched.
type AttributeBinding struct {
	node *html.Node
	name string
	expr *Expression
}

// Kind implements Binding.
func (b *AttributeBinding) Kind() BindingKind { return KindAttribute }

// Node returns the element the binding currently targets.
func (b *AttributeBinding) Node() *html.Node { return b.node }

// Name returns the attribute name.
func (b *AttributeBinding) Name() string { return b.name }

// Update implements Binding.
func (b *AttributeBinding) Update(ctx *Context) error {
	value, present, _ := attrValue(b.expr.Get(ctx))
	current, had := dom.GetAttr(b.node, b.name)
	switch {
	case !present && had:
		dom.RemoveAttr(b.node, b.name)
	case present && (!had || current != value):
		dom.SetAttr(b.node, b.name, value)
	}
	return nil
}

func (b *AttributeBinding) retarget(nodes map[*html.Node]*html.Node) {
	b.node = swap(nodes, b.node)
}

// section is the region between a start and an end marker comment.
type section struct {
	start *html.Node
	end   *html.Node
}

func newSection(parent, ref *html.Node, marker string) section {
	s := section{
		start: dom.NewComment(marker),
		end:   dom.NewComment(endMarker),
	}
	dom.InsertBefore(parent, s.start, ref)
	dom.InsertBefore(parent, s.end, ref)
	return s
}

func (s *section) parent() *html.Node {
	return s.end.Parent
}

// clear detaches every node between the markers.
func (s *section) clear() {
	for n := s.start.NextSibling; n != nil && n != s.end; {
		next := n.NextSibling
		dom.Detach(n)
		n = next
	}
}

// replace swaps the section content for the children of staged.
func (s *section) replace(staged *html.Node) {
	s.clear()
	for n := staged.FirstChild; n != nil; {
		next := n.NextSibling
		staged.RemoveChild(n)
		dom.InsertBefore(s.parent(), n, s.end)
		n = next
	}
}

func (s *section) retarget(nodes map[*html.Node]*html.Node) {
	s.start = swap(nodes, s.start)
	s.end = swap(nodes, s.end)
}
