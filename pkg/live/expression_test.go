package live

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type author struct {
	Name    string `json:"name"`
	Twitter string
	secret  string
}

func TestExpressionGet(t *testing.T) {
	root := NewContext(nil, map[string]any{
		"title":  "Root",
		"author": &author{Name: "Ann", Twitter: "@ann", secret: "x"},
		"tags":   []string{"go", "html"},
		"counts": map[string]int{"a": 1},
	})

	tests := []struct {
		path string
		want any
	}{
		{"title", "Root"},
		{"author.name", "Ann"},
		{"author.twitter", "@ann"},
		{"author.secret", nil},
		{"tags.1", "html"},
		{"tags.5", nil},
		{"counts.a", 1},
		{"missing", nil},
		{"missing.deeper", nil},
		{"title.length", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NewExpression(tt.path).Get(root); got != tt.want {
				t.Errorf("Get(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

type audit struct {
	ID int `json:"id"`
}

type Profile struct {
	Bio  string
	Name string
}

type member struct {
	audit
	*Profile
	Name string
}

func TestExpressionEmbeddedFields(t *testing.T) {
	root := NewContext(nil, map[string]any{
		"member": member{audit: audit{ID: 7}, Profile: &Profile{Bio: "hi", Name: "shadowed"}, Name: "Ann"},
		"guest":  member{Name: "Bob"},
	})

	tests := []struct {
		path string
		want any
	}{
		{"member.id", 7},
		{"member.bio", "hi"},
		{"member.name", "Ann"},
		{"member.profile.name", "shadowed"},
		{"guest.bio", nil},
		{"guest.id", 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NewExpression(tt.path).Get(root); got != tt.want {
				t.Errorf("Get(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestContextWithMeta(t *testing.T) {
	var added []Binding
	meta := &ContextMeta{OnAdd: func(b Binding) { added = append(added, b) }}

	root := NewContext(nil, map[string]any{"title": "Root"})
	row := root.ChildAlias("row", map[string]any{"name": "row"})
	moved := row.WithMeta(meta)

	if moved.Meta() != meta || moved.Parent().Meta() != meta {
		t.Error("every context in the chain should use the new meta")
	}
	if row.Meta() == meta {
		t.Error("the original chain should keep its meta")
	}
	if got := NewExpression("#row.name").Get(moved); got != "row" {
		t.Errorf("#row.name = %v, want row", got)
	}
	if got := NewExpression("title").Get(moved); got != "Root" {
		t.Errorf("title = %v, want Root", got)
	}

	var none *Context
	if got := none.WithMeta(nil); got == nil || got.Meta() == nil {
		t.Error("WithMeta on nil should yield an empty root context")
	}
}

func TestExpressionParentChain(t *testing.T) {
	root := NewContext(nil, map[string]any{"title": "Root", "name": "outer"})
	child := root.Child(map[string]any{"name": "inner"})

	if got := NewExpression("name").Get(child); got != "inner" {
		t.Errorf("name = %v, want inner", got)
	}
	if got := NewExpression("title").Get(child); got != "Root" {
		t.Errorf("title = %v, want Root", got)
	}
	if got := NewExpression("").Get(child); got == nil {
		t.Error("empty path should yield the context data")
	}
	if child.Parent() != root {
		t.Error("Parent() should return the enclosing context")
	}
	if child.Meta() != root.Meta() {
		t.Error("child should share the meta of its parent")
	}
}

func TestExpressionAlias(t *testing.T) {
	root := NewContext(nil, map[string]any{"name": "root"})
	row := root.ChildAlias("row", map[string]any{"name": "row"})
	cell := row.Child(map[string]any{"name": "cell"})

	if got := NewExpression("#row.name").Get(cell); got != "row" {
		t.Errorf("#row.name = %v, want row", got)
	}
	if got := NewExpression("#row").Get(cell); got == nil {
		t.Error("#row should yield the aliased data")
	}
	if got := NewExpression("#col.name").Get(cell); got != nil {
		t.Errorf("unknown alias should be nil, got %v", got)
	}
}

func TestExpressionNilContext(t *testing.T) {
	if got := NewExpression("a").Get(nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestElseExpression(t *testing.T) {
	e := ElseExpression()
	if !e.IsElse() {
		t.Error("IsElse() should be true")
	}
	if got := e.GetForConditional(NewContext(nil, nil)); got != true {
		t.Errorf("GetForConditional() = %v, want true", got)
	}
	if e.String() != "else" {
		t.Errorf("String() = %q, want else", e.String())
	}
	if NewExpression("").String() != "." {
		t.Errorf("String() of empty path = %q, want .", NewExpression("").String())
	}
}

func TestTruthy(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *author

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero", 0, true},
		{"empty string", "", true},
		{"string", "x", true},
		{"empty slice", []any{}, false},
		{"slice", []int{1}, true},
		{"empty array", [0]int{}, false},
		{"nil map", nilMap, false},
		{"empty map", map[string]any{}, true},
		{"nil pointer", nilPtr, false},
		{"pointer", &author{}, true},
		{"struct", author{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.value); got != tt.want {
				t.Errorf("Truthy(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSameValue(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", nil, 1, false},
		{"equal ints", 1, 1, true},
		{"different types", 1, int64(1), false},
		{"equal strings", "a", "a", true},
		{"maps never", map[string]any{}, map[string]any{}, false},
		{"slices never", []any{1}, []any{1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameValue(tt.a, tt.b); got != tt.want {
				t.Errorf("sameValue(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAttributesMapOrder(t *testing.T) {
	m := NewAttributesMap().
		Set("b", NewAttribute("1")).
		Set("a", NewAttribute("2")).
		Set("b", NewAttribute("3"))

	if diff := cmp.Diff([]string{"b", "a"}, m.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	attr, ok := m.Get("b")
	if !ok || attr.(*Attribute).Value != "3" {
		t.Errorf("Get(b) = %v, want 3", attr)
	}

	var empty *AttributesMap
	if empty.Len() != 0 || empty.Names() != nil {
		t.Error("nil map should be empty")
	}
}
