package live

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/tether/pkg/dom"
)

// Fragment is a built node tree together with the bindings wired to it.
type Fragment struct {
	// Root is a fragment container; its children are the rendered nodes.
	Root *html.Node

	// Bindings holds every binding created while building, in document order.
	Bindings []Binding
}

// Fragment builds live nodes for the template against ctx and creates one
// binding per dynamic node. Bindings are reported to ctx.Meta().OnAdd in
// document order before Fragment returns. A nil ctx builds with no data.
func (t *Template) Fragment(ctx *Context) (*Fragment, error) {
	ctx = orEmpty(ctx)
	root := dom.NewFragment()
	col := &collector{}
	if err := buildNodes(root, nil, t.Nodes, ctx, col); err != nil {
		return nil, err
	}
	col.commit(ctx)
	return &Fragment{Root: root, Bindings: col.bindings}, nil
}

// collector accumulates bindings during a build. Nothing is reported to
// OnAdd until commit, so a failed build registers nothing.
type collector struct {
	bindings []Binding
}

func (c *collector) add(b Binding) {
	c.bindings = append(c.bindings, b)
}

func (c *collector) since(mark int) []Binding {
	return append([]Binding(nil), c.bindings[mark:]...)
}

func (c *collector) commit(ctx *Context) {
	for _, b := range c.bindings {
		ctx.register(b)
	}
}

func buildNodes(parent, ref *html.Node, nodes []Node, ctx *Context, col *collector) error {
	for _, n := range nodes {
		if err := n.build(parent, ref, ctx, col); err != nil {
			return err
		}
	}
	return nil
}

func (n *Text) build(parent, ref *html.Node, _ *Context, _ *collector) error {
	dom.InsertBefore(parent, dom.NewText(n.Data), ref)
	return nil
}

func (n *DynamicText) build(parent, ref *html.Node, ctx *Context, col *collector) error {
	node := dom.NewText(toString(n.Expr.Get(ctx)))
	dom.InsertBefore(parent, node, ref)
	col.add(&TextBinding{node: node, expr: n.Expr})
	return nil
}

func (n *Comment) build(parent, ref *html.Node, _ *Context, _ *collector) error {
	dom.InsertBefore(parent, dom.NewComment(n.Data), ref)
	return nil
}

func (n *DynamicComment) build(parent, ref *html.Node, ctx *Context, col *collector) error {
	node := dom.NewComment(toString(n.Expr.Get(ctx)))
	dom.InsertBefore(parent, node, ref)
	col.add(&CommentBinding{node: node, expr: n.Expr})
	return nil
}

func (n *Element) build(parent, ref *html.Node, ctx *Context, col *collector) error {
	el := dom.NewElement(n.Tag)

	for _, name := range n.Attrs.Names() {
		attr, _ := n.Attrs.Get(name)
		value, present, _ := attrValue(attr.resolve(ctx))
		if present {
			dom.SetAttr(el, name, value)
		}
		if dyn, ok := attr.(*DynamicAttribute); ok {
			col.add(&AttributeBinding{node: el, name: name, expr: dyn.Expr})
		}
	}

	if !isVoidElement(n.Tag) {
		if err := buildNodes(el, nil, n.Children, ctx, col); err != nil {
			return err
		}
	}

	dom.InsertBefore(parent, el, ref)
	return nil
}

func (n *Block) build(parent, ref *html.Node, ctx *Context, col *collector) error {
	value := n.Expr.Get(ctx)
	s := newSection(parent, ref, blockMarker(n.Expr))
	if err := buildNodes(parent, s.end, n.Children, ctx.Child(value), col); err != nil {
		return err
	}
	col.add(&BlockBinding{section: s, tmpl: n, value: value})
	return nil
}

func (n *ConditionalBlock) build(parent, ref *html.Node, ctx *Context, col *collector) error {
	s := newSection(parent, ref, conditionalMarker(n))
	i, branchCtx := n.selectBranch(ctx)
	if i >= 0 {
		if err := buildNodes(parent, s.end, n.branch(i), branchCtx, col); err != nil {
			return err
		}
	}
	col.add(&ConditionalBinding{section: s, tmpl: n, active: i})
	return nil
}

func (n *EachBlock) build(parent, ref *html.Node, ctx *Context, col *collector) error {
	items, err := sequence(n.Expr.Get(ctx))
	if err != nil {
		return err
	}

	s := newSection(parent, ref, eachMarker(n))
	b := &EachBinding{section: s, tmpl: n}
	if len(items) == 0 {
		if n.Else != nil {
			g, err := b.buildGroup(n.Else, ctx, col)
			if err != nil {
				return err
			}
			g.insertBefore(parent, s.end)
			b.elseGroup = g
		}
	} else {
		groups, err := b.buildItems(items, ctx, col)
		if err != nil {
			return err
		}
		for _, g := range groups {
			g.insertBefore(parent, s.end)
		}
		b.groups = groups
	}
	col.add(b)
	return nil
}
