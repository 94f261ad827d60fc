package live

import (
	"bytes"
	"io"
)

// HTML renders the template to markup against ctx. A nil ctx renders with
// no data. No bindings are created.
func (t *Template) HTML(ctx *Context) (string, error) {
	var buf bytes.Buffer
	if err := t.writeNodes(&buf, orEmpty(ctx)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteHTML streams the rendered markup to w.
func (t *Template) WriteHTML(w io.Writer, ctx *Context) error {
	var buf bytes.Buffer
	if err := t.writeNodes(&buf, orEmpty(ctx)); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (t *Template) writeNodes(buf *bytes.Buffer, ctx *Context) error {
	return writeNodes(buf, t.Nodes, ctx)
}

func writeNodes(buf *bytes.Buffer, nodes []Node, ctx *Context) error {
	for _, n := range nodes {
		if err := n.writeHTML(buf, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (n *Text) writeHTML(buf *bytes.Buffer, _ *Context) error {
	buf.WriteString(escapeHTML(n.Data))
	return nil
}

func (n *DynamicText) writeHTML(buf *bytes.Buffer, ctx *Context) error {
	buf.WriteString(escapeHTML(toString(n.Expr.Get(ctx))))
	return nil
}

func (n *Comment) writeHTML(buf *bytes.Buffer, _ *Context) error {
	writeComment(buf, n.Data)
	return nil
}

func (n *DynamicComment) writeHTML(buf *bytes.Buffer, ctx *Context) error {
	writeComment(buf, toString(n.Expr.Get(ctx)))
	return nil
}

func writeComment(buf *bytes.Buffer, data string) {
	buf.WriteString("<!--")
	buf.WriteString(escapeComment(data))
	buf.WriteString("-->")
}

func (n *Element) writeHTML(buf *bytes.Buffer, ctx *Context) error {
	buf.WriteByte('<')
	buf.WriteString(n.Tag)

	for _, name := range n.Attrs.Names() {
		attr, _ := n.Attrs.Get(name)
		value, present, bare := attrValue(attr.resolve(ctx))
		if !present {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(name)
		if bare {
			continue
		}
		buf.WriteString(`="`)
		buf.WriteString(escapeAttr(value))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')

	if isVoidElement(n.Tag) {
		return nil
	}

	if err := writeNodes(buf, n.Children, ctx); err != nil {
		return err
	}

	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteByte('>')
	return nil
}

func (n *Block) writeHTML(buf *bytes.Buffer, ctx *Context) error {
	writeComment(buf, blockMarker(n.Expr))
	if err := writeNodes(buf, n.Children, ctx.Child(n.Expr.Get(ctx))); err != nil {
		return err
	}
	writeComment(buf, endMarker)
	return nil
}

func (n *ConditionalBlock) writeHTML(buf *bytes.Buffer, ctx *Context) error {
	writeComment(buf, conditionalMarker(n))
	if i, branchCtx := n.selectBranch(ctx); i >= 0 {
		if err := writeNodes(buf, n.branch(i), branchCtx); err != nil {
			return err
		}
	}
	writeComment(buf, endMarker)
	return nil
}

func (n *EachBlock) writeHTML(buf *bytes.Buffer, ctx *Context) error {
	items, err := sequence(n.Expr.Get(ctx))
	if err != nil {
		return err
	}

	writeComment(buf, eachMarker(n))
	if len(items) == 0 {
		if err := writeNodes(buf, n.Else, ctx); err != nil {
			return err
		}
	}
	for _, item := range items {
		if err := writeNodes(buf, n.Children, n.itemContext(ctx, item)); err != nil {
			return err
		}
	}
	writeComment(buf, endMarker)
	return nil
}
