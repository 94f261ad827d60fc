package live

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Node is one entry of a template tree. The set of implementations is
// closed: *Text, *DynamicText, *Comment, *DynamicComment, *Element,
// *Block, *ConditionalBlock and *EachBlock.
type Node interface {
	writeHTML(buf *bytes.Buffer, ctx *Context) error
	build(parent, ref *html.Node, ctx *Context, col *collector) error
}

// Text is a literal text node.
type Text struct {
	Data string
}

// NewText creates a literal text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// DynamicText is a text node whose data comes from an expression.
type DynamicText struct {
	Expr *Expression
}

// NewDynamicText creates an expression-backed text node.
func NewDynamicText(expr *Expression) *DynamicText {
	return &DynamicText{Expr: expr}
}

// Comment is a literal comment node.
type Comment struct {
	Data string
}

// NewComment creates a literal comment node.
func NewComment(data string) *Comment {
	return &Comment{Data: data}
}

// DynamicComment is a comment node whose data comes from an expression.
type DynamicComment struct {
	Expr *Expression
}

// NewDynamicComment creates an expression-backed comment node.
func NewDynamicComment(expr *Expression) *DynamicComment {
	return &DynamicComment{Expr: expr}
}

// Element is an element with ordered attributes and child templates.
// Void elements (br, input, ...) never render children.
type Element struct {
	Tag      string
	Attrs    *AttributesMap
	Children []Node
}

// NewElement creates an element template. attrs may be nil.
func NewElement(tag string, attrs *AttributesMap, children ...Node) *Element {
	return &Element{Tag: strings.ToLower(tag), Attrs: attrs, Children: children}
}

// Block renders its children in a child scope holding the value of Expr.
// Updates replace the whole subtree.
type Block struct {
	Expr     *Expression
	Children []Node
}

// NewBlock creates a block template.
func NewBlock(expr *Expression, children ...Node) *Block {
	return &Block{Expr: expr, Children: children}
}

// ConditionalBlock renders the branch of the first truthy expression.
// Exprs and Branches pair up by index; ElseExpression matches always.
// A missing branch renders nothing.
type ConditionalBlock struct {
	Exprs    []*Expression
	Branches [][]Node
}

// NewConditionalBlock creates a conditional template.
func NewConditionalBlock(exprs []*Expression, branches [][]Node) *ConditionalBlock {
	return &ConditionalBlock{Exprs: exprs, Branches: branches}
}

func (b *ConditionalBlock) branch(i int) []Node {
	if i < 0 || i >= len(b.Branches) {
		return nil
	}
	return b.Branches[i]
}

// selectBranch returns the index of the first matching condition and the
// context its branch renders in, or -1 when nothing matches.
func (b *ConditionalBlock) selectBranch(ctx *Context) (int, *Context) {
	for i, expr := range b.Exprs {
		if expr.IsElse() {
			return i, ctx
		}
		if v := expr.GetForConditional(ctx); Truthy(v) {
			return i, ctx.Child(v)
		}
	}
	return -1, ctx
}

// EachBlock renders Children once per item of the sequence Expr yields, or
// Else when the sequence is missing or empty. Items render in a child
// scope; with Alias set, the item is also reachable as #Alias.
type EachBlock struct {
	Expr     *Expression
	Alias    string
	Children []Node
	Else     []Node
}

// NewEachBlock creates an each template. elseChildren may be nil.
func NewEachBlock(expr *Expression, children []Node, elseChildren []Node) *EachBlock {
	return &EachBlock{Expr: expr, Children: children, Else: elseChildren}
}

func (b *EachBlock) itemContext(ctx *Context, item any) *Context {
	if b.Alias != "" {
		return ctx.ChildAlias(b.Alias, item)
	}
	return ctx.Child(item)
}

// Template is an immutable, ordered list of top-level node templates.
// A Template may be rendered any number of times, with any contexts.
type Template struct {
	Nodes []Node
}

// NewTemplate creates a template from top-level nodes.
func NewTemplate(nodes ...Node) *Template {
	return &Template{Nodes: nodes}
}

const endMarker = "{{/}}"

func blockMarker(expr *Expression) string {
	return "{{" + expr.String() + "}}"
}

func conditionalMarker(b *ConditionalBlock) string {
	if len(b.Exprs) == 0 {
		return "{{if}}"
	}
	return "{{if " + b.Exprs[0].String() + "}}"
}

func eachMarker(b *EachBlock) string {
	if b.Alias != "" {
		return "{{each " + b.Expr.String() + " as #" + b.Alias + "}}"
	}
	return "{{each " + b.Expr.String() + "}}"
}
