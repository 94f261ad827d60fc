package live

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/tether/pkg/dom"
)

// newContext returns a root context that appends every created binding
// to *bindings when bindings is not nil.
func newContext(data any, bindings *[]Binding) *Context {
	meta := &ContextMeta{
		OnAdd: func(b Binding) {
			if bindings != nil {
				*bindings = append(*bindings, b)
			}
		},
	}
	return NewContext(meta, data)
}

// render builds the template into a fresh fixture element and returns the
// fixture with the bindings reported through OnAdd.
func render(t *testing.T, tmpl *Template, data any) (*html.Node, []Binding) {
	t.Helper()
	var bindings []Binding
	frag, err := tmpl.Fragment(newContext(data, &bindings))
	if err != nil {
		t.Fatalf("Fragment() error: %v", err)
	}
	fixture := dom.NewElement("div")
	dom.Append(fixture, frag.Root)
	return fixture, bindings
}

func textOf(n *html.Node) string {
	return dom.TextContent(n)
}

func lastEach(t *testing.T, bindings []Binding) *EachBinding {
	t.Helper()
	if len(bindings) == 0 {
		t.Fatal("no bindings")
	}
	b, ok := bindings[len(bindings)-1].(*EachBinding)
	if !ok {
		t.Fatalf("last binding is %T, want *EachBinding", bindings[len(bindings)-1])
	}
	return b
}

func items(names ...string) []any {
	out := make([]any, len(names))
	for i, name := range names {
		out[i] = map[string]any{"name": name}
	}
	return out
}

func expr(path string) *Expression {
	return NewExpression(path)
}

func attrs(pairs ...any) *AttributesMap {
	m := NewAttributesMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(Attr))
	}
	return m
}
