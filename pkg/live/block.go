package live

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/tether/pkg/dom"
)

// BlockBinding owns the region of a Block section.
type BlockBinding struct {
	section
	tmpl  *Block
	value any
}

// Kind implements Binding.
func (b *BlockBinding) Kind() BindingKind { return KindBlock }

// Update rebuilds the block content when its value changed. The new
// content is built before the old content is removed, so a failed build
// leaves the region untouched.
func (b *BlockBinding) Update(ctx *Context) error {
	value := b.tmpl.Expr.Get(ctx)
	if sameValue(b.value, value) {
		return nil
	}

	staged := dom.NewFragment()
	col := &collector{}
	if err := buildNodes(staged, nil, b.tmpl.Children, ctx.Child(value), col); err != nil {
		return err
	}
	b.replace(staged)
	b.value = value
	col.commit(ctx)

	ctx.logger().Debug("block rebuilt",
		"path", b.tmpl.Expr.String(),
		"bindings", len(col.bindings))
	return nil
}

func (b *BlockBinding) retarget(nodes map[*html.Node]*html.Node) {
	b.section.retarget(nodes)
}

// ConditionalBinding owns the region of a ConditionalBlock section.
type ConditionalBinding struct {
	section
	tmpl   *ConditionalBlock
	active int
}

// Kind implements Binding.
func (b *ConditionalBinding) Kind() BindingKind { return KindConditional }

// Active returns the index of the rendered branch, or -1 for none.
func (b *ConditionalBinding) Active() int { return b.active }

// Update swaps the rendered branch when a different one is selected. The
// content of a branch that stays selected is left alone; its own bindings
// keep it current.
func (b *ConditionalBinding) Update(ctx *Context) error {
	i, branchCtx := b.tmpl.selectBranch(ctx)
	if i == b.active {
		return nil
	}

	staged := dom.NewFragment()
	col := &collector{}
	if i >= 0 {
		if err := buildNodes(staged, nil, b.tmpl.branch(i), branchCtx, col); err != nil {
			return err
		}
	}
	b.replace(staged)
	from := b.active
	b.active = i
	col.commit(ctx)

	ctx.logger().Debug("conditional branch switched",
		"from", from,
		"to", i,
		"bindings", len(col.bindings))
	return nil
}

func (b *ConditionalBinding) retarget(nodes map[*html.Node]*html.Node) {
	b.section.retarget(nodes)
}
