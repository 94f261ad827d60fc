package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		node *html.Node
		want Kind
	}{
		{"element", NewElement("div"), KindElement},
		{"text", NewText("hi"), KindText},
		{"comment", NewComment("hi"), KindComment},
		{"fragment", NewFragment(), KindFragment},
		{"doctype", &html.Node{Type: html.DoctypeNode}, KindOther},
		{"nil", nil, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.node); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindElement.String() != "Element" || KindComment.String() != "Comment" {
		t.Error("unexpected Kind strings")
	}
	if Kind(99).String() != "Other" {
		t.Errorf("Kind(99).String() = %q, want Other", Kind(99).String())
	}
}

func TestNewElementLowercasesTag(t *testing.T) {
	n := NewElement("DIV")
	if Tag(n) != "div" {
		t.Errorf("Tag() = %q, want div", Tag(n))
	}
	if Tag(NewText("x")) != "" {
		t.Error("Tag of a text node should be empty")
	}
}

func TestAppendFragment(t *testing.T) {
	frag := NewFragment()
	frag.AppendChild(NewText("a"))
	frag.AppendChild(NewComment("b"))

	parent := NewElement("div")
	Append(parent, frag)

	if frag.FirstChild != nil {
		t.Error("fragment should be emptied")
	}
	if got := InnerHTML(parent); got != "a<!--b-->" {
		t.Errorf("InnerHTML() = %q, want %q", got, "a<!--b-->")
	}
}

func TestInsertBeforeAndDetach(t *testing.T) {
	parent := NewElement("ul")
	last := NewElement("li")
	Append(parent, last)
	InsertBefore(parent, NewElement("p"), last)
	InsertBefore(parent, NewElement("span"), nil)

	if got := InnerHTML(parent); got != "<p></p><li></li><span></span>" {
		t.Errorf("InnerHTML() = %q", got)
	}

	Detach(last)
	if last.Parent != nil {
		t.Error("detached node should have no parent")
	}
	Detach(last)
	if len(Children(parent)) != 2 {
		t.Errorf("len(Children) = %d, want 2", len(Children(parent)))
	}
}

func TestAttributes(t *testing.T) {
	n := NewElement("input")

	if _, ok := GetAttr(n, "value"); ok {
		t.Error("attribute should be absent")
	}

	SetAttr(n, "type", "text")
	SetAttr(n, "value", "a")
	SetAttr(n, "type", "radio")

	if v, ok := GetAttr(n, "type"); !ok || v != "radio" {
		t.Errorf("GetAttr(type) = %q, %v", v, ok)
	}
	if n.Attr[0].Key != "type" {
		t.Error("re-setting an attribute should keep its position")
	}

	RemoveAttr(n, "type")
	RemoveAttr(n, "missing")
	if _, ok := GetAttr(n, "type"); ok {
		t.Error("attribute should be removed")
	}
	if len(n.Attr) != 1 {
		t.Errorf("len(Attr) = %d, want 1", len(n.Attr))
	}
}

func TestTextContentSkipsComments(t *testing.T) {
	div := NewElement("div")
	Append(div, NewText("One"))
	Append(div, NewComment("ignored"))
	span := NewElement("span")
	Append(span, NewText("Two"))
	Append(div, span)

	if got := TextContent(div); got != "OneTwo" {
		t.Errorf("TextContent() = %q, want OneTwo", got)
	}
}

func TestElements(t *testing.T) {
	div := NewElement("div")
	Append(div, NewText("x"))
	Append(div, NewElement("h3"))
	Append(div, NewComment("c"))

	els := Elements(div)
	if len(els) != 1 || Tag(els[0]) != "h3" {
		t.Errorf("Elements() = %v", els)
	}
}

func TestChildrenOrder(t *testing.T) {
	div := NewElement("div")
	Append(div, NewText("x"))
	Append(div, NewElement("b"))
	Append(div, NewComment("c"))

	var kinds []Kind
	for _, c := range Children(div) {
		kinds = append(kinds, KindOf(c))
	}
	want := []Kind{KindText, KindElement, KindComment}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("Children() kinds mismatch (-want +got):\n%s", diff)
	}
}
