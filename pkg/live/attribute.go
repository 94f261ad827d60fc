package live

// Attr is the value of an element attribute: *Attribute or *DynamicAttribute.
type Attr interface {
	resolve(ctx *Context) any
}

// Attribute is a literal attribute value. A bool value marks a boolean
// attribute: true renders the bare name, false omits the attribute.
type Attribute struct {
	Value any
}

// NewAttribute creates a literal attribute.
func NewAttribute(value any) *Attribute {
	return &Attribute{Value: value}
}

func (a *Attribute) resolve(*Context) any {
	return a.Value
}

// DynamicAttribute is an attribute whose value comes from an expression.
// The resolved value follows the same rules as Attribute.
type DynamicAttribute struct {
	Expr *Expression
}

// NewDynamicAttribute creates an expression-backed attribute.
func NewDynamicAttribute(expr *Expression) *DynamicAttribute {
	return &DynamicAttribute{Expr: expr}
}

func (a *DynamicAttribute) resolve(ctx *Context) any {
	return a.Expr.Get(ctx)
}

// AttributesMap is an ordered set of attributes. Names are unique and keep
// the position of their first Set.
type AttributesMap struct {
	names []string
	attrs map[string]Attr
}

// NewAttributesMap creates an empty attributes map.
func NewAttributesMap() *AttributesMap {
	return &AttributesMap{attrs: make(map[string]Attr)}
}

// Set adds or replaces an attribute and returns m for chaining.
func (m *AttributesMap) Set(name string, attr Attr) *AttributesMap {
	if _, ok := m.attrs[name]; !ok {
		m.names = append(m.names, name)
	}
	m.attrs[name] = attr
	return m
}

// Get returns the attribute stored under name.
func (m *AttributesMap) Get(name string) (Attr, bool) {
	if m == nil {
		return nil, false
	}
	a, ok := m.attrs[name]
	return a, ok
}

// Names returns the attribute names in insertion order.
func (m *AttributesMap) Names() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

// Len returns the number of attributes.
func (m *AttributesMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// attrValue applies the attribute rendering rule to a resolved value:
// nil and false are absent, true is present without a value.
func attrValue(v any) (value string, present, bare bool) {
	switch t := v.(type) {
	case nil:
		return "", false, false
	case bool:
		return "", t, t
	default:
		return toString(v), true, false
	}
}
