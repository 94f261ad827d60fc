package live

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/dom"
)

// EachBinding owns the region of an EachBlock section. Every item renders
// into its own group of sibling nodes; the groups follow item order.
type EachBinding struct {
	section
	tmpl      *EachBlock
	groups    []*itemGroup
	elseGroup *itemGroup
}

// itemGroup is the contiguous run of nodes rendered for one item, plus the
// bindings created for it. first and last are nil when the item rendered
// no nodes.
type itemGroup struct {
	first    *html.Node
	last     *html.Node
	bindings []Binding
}

func (g *itemGroup) nodes() []*html.Node {
	if g.first == nil {
		return nil
	}
	var nodes []*html.Node
	for n := g.first; n != nil; n = n.NextSibling {
		nodes = append(nodes, n)
		if n == g.last {
			break
		}
	}
	return nodes
}

func (g *itemGroup) detach() {
	for _, n := range g.nodes() {
		dom.Detach(n)
	}
}

func (g *itemGroup) insertBefore(parent, ref *html.Node) {
	for _, n := range g.nodes() {
		dom.Detach(n)
		dom.InsertBefore(parent, n, ref)
	}
}

func (g *itemGroup) retarget(nodes map[*html.Node]*html.Node) {
	if g == nil || g.first == nil {
		return
	}
	g.first = swap(nodes, g.first)
	g.last = swap(nodes, g.last)
}

// Kind implements Binding.
func (b *EachBinding) Kind() BindingKind { return KindEach }

// Len returns the number of rendered items.
func (b *EachBinding) Len() int { return len(b.groups) }

// Item returns the bindings created for the item at index i.
func (b *EachBinding) Item(i int) []Binding {
	if i < 0 || i >= len(b.groups) {
		return nil
	}
	return b.groups[i].bindings
}

// buildGroup builds nodes into a detached container and returns the group
// describing them. The caller moves the group into place.
func (b *EachBinding) buildGroup(nodes []Node, ctx *Context, col *collector) (*itemGroup, error) {
	staged := dom.NewFragment()
	mark := len(col.bindings)
	if err := buildNodes(staged, nil, nodes, ctx, col); err != nil {
		return nil, err
	}
	return &itemGroup{
		first:    staged.FirstChild,
		last:     staged.LastChild,
		bindings: col.since(mark),
	}, nil
}

func (b *EachBinding) buildItems(items []any, ctx *Context, col *collector) ([]*itemGroup, error) {
	groups := make([]*itemGroup, 0, len(items))
	for _, item := range items {
		g, err := b.buildGroup(b.tmpl.Children, b.tmpl.itemContext(ctx, item), col)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// nodeAt returns the node that the group at index starts with, or the
// first node of a later group, or the end marker.
func (b *EachBinding) nodeAt(index int) *html.Node {
	for _, g := range b.groups[index:] {
		if g.first != nil {
			return g.first
		}
	}
	return b.end
}

func (b *EachBinding) items(ctx *Context) ([]any, error) {
	return sequence(b.tmpl.Expr.Get(ctx))
}

// Update re-renders every item from the current sequence.
func (b *EachBinding) Update(ctx *Context) error {
	items, err := b.items(ctx)
	if err != nil {
		return err
	}

	col := &collector{}
	var groups []*itemGroup
	var elseGroup *itemGroup
	if len(items) == 0 {
		if b.tmpl.Else != nil {
			if elseGroup, err = b.buildGroup(b.tmpl.Else, ctx, col); err != nil {
				return err
			}
		}
	} else if groups, err = b.buildItems(items, ctx, col); err != nil {
		return err
	}

	b.clear()
	parent := b.parent()
	if elseGroup != nil {
		elseGroup.insertBefore(parent, b.end)
	}
	for _, g := range groups {
		g.insertBefore(parent, b.end)
	}
	b.groups = groups
	b.elseGroup = elseGroup
	col.commit(ctx)

	ctx.logger().Debug("each rebuilt",
		"path", b.tmpl.Expr.String(),
		"items", len(groups))
	return nil
}

// Insert renders count new items at index. The sequence in ctx must
// already contain them.
func (b *EachBinding) Insert(ctx *Context, index, count int) error {
	items, err := b.items(ctx)
	if err != nil {
		return err
	}
	if count < 0 || index < 0 || index > len(b.groups) || len(b.groups)+count != len(items) {
		return errors.New("E051").WithDetailf(
			"insert %d at %d: %d items rendered, sequence has %d",
			count, index, len(b.groups), len(items))
	}
	if count == 0 {
		return nil
	}

	col := &collector{}
	added, err := b.buildItems(items[index:index+count], ctx, col)
	if err != nil {
		return err
	}

	if b.elseGroup != nil {
		b.elseGroup.detach()
		b.elseGroup = nil
	}
	ref := b.nodeAt(index)
	parent := b.parent()
	for _, g := range added {
		g.insertBefore(parent, ref)
	}
	groups := make([]*itemGroup, 0, len(b.groups)+count)
	groups = append(groups, b.groups[:index]...)
	groups = append(groups, added...)
	b.groups = append(groups, b.groups[index:]...)
	col.commit(ctx)
	return nil
}

// Remove tears down count items starting at index. The sequence in ctx
// must already be without them.
func (b *EachBinding) Remove(ctx *Context, index, count int) error {
	items, err := b.items(ctx)
	if err != nil {
		return err
	}
	if count < 0 || index < 0 || index+count > len(b.groups) || len(b.groups)-count != len(items) {
		return errors.New("E051").WithDetailf(
			"remove %d at %d: %d items rendered, sequence has %d",
			count, index, len(b.groups), len(items))
	}
	if count == 0 {
		return nil
	}

	col := &collector{}
	var elseGroup *itemGroup
	if len(items) == 0 && b.tmpl.Else != nil {
		if elseGroup, err = b.buildGroup(b.tmpl.Else, ctx, col); err != nil {
			return err
		}
	}

	for _, g := range b.groups[index : index+count] {
		g.detach()
	}
	b.groups = append(b.groups[:index:index], b.groups[index+count:]...)
	if elseGroup != nil {
		elseGroup.insertBefore(b.parent(), b.end)
		b.elseGroup = elseGroup
	}
	col.commit(ctx)
	return nil
}

// Move relocates count items from one index to another with the meaning of
// removing them at from and reinserting them at to. The rendered nodes are
// moved, not rebuilt. The sequence in ctx must already be reordered.
func (b *EachBinding) Move(ctx *Context, from, to, count int) error {
	items, err := b.items(ctx)
	if err != nil {
		return err
	}
	n := len(b.groups)
	if count < 0 || from < 0 || to < 0 || from+count > n || to+count > n || len(items) != n {
		return errors.New("E051").WithDetailf(
			"move %d from %d to %d: %d items rendered, sequence has %d",
			count, from, to, n, len(items))
	}
	if count == 0 || from == to {
		return nil
	}

	moved := append([]*itemGroup(nil), b.groups[from:from+count]...)
	rest := append(b.groups[:from:from], b.groups[from+count:]...)
	groups := make([]*itemGroup, 0, n)
	groups = append(groups, rest[:to]...)
	groups = append(groups, moved...)
	b.groups = append(groups, rest[to:]...)

	ref := b.nodeAt(to + count)
	parent := b.parent()
	for _, g := range moved {
		g.insertBefore(parent, ref)
	}
	return nil
}

func (b *EachBinding) retarget(nodes map[*html.Node]*html.Node) {
	b.section.retarget(nodes)
	for _, g := range b.groups {
		g.retarget(nodes)
	}
	b.elseGroup.retarget(nodes)
}
