package live

import "log/slog"

// ContextMeta is state shared by every context of one render or hydrate
// pass. It is passed by pointer and never copied by the engine.
type ContextMeta struct {
	// OnAdd is called once for every binding created, in document order.
	OnAdd func(Binding)

	// Logger receives debug records for structural section changes.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Context is an immutable link in a chain of data scopes.
type Context struct {
	meta   *ContextMeta
	data   any
	parent *Context
	alias  string
}

// NewContext creates a root context. A nil meta is replaced by an empty one.
func NewContext(meta *ContextMeta, data any) *Context {
	if meta == nil {
		meta = &ContextMeta{}
	}
	return &Context{meta: meta, data: data}
}

// Child returns a new context for data whose parent is c.
func (c *Context) Child(data any) *Context {
	return &Context{meta: c.meta, data: data, parent: c}
}

// ChildAlias returns a child context for data that can also be addressed
// as #alias from any descendant context.
func (c *Context) ChildAlias(alias string, data any) *Context {
	return &Context{meta: c.meta, data: data, parent: c, alias: alias}
}

// Data returns the value wrapped by c.
func (c *Context) Data() any {
	if c == nil {
		return nil
	}
	return c.data
}

// Parent returns the enclosing context, or nil for a root context.
func (c *Context) Parent() *Context {
	if c == nil {
		return nil
	}
	return c.parent
}

// Meta returns the shared metadata of c.
func (c *Context) Meta() *ContextMeta {
	return c.meta
}

// Alias returns the alias name of c, if any.
func (c *Context) Alias() string {
	return c.alias
}

// WithMeta returns a copy of the context chain of c, down to the root, in
// which every context uses meta. Data and aliases are unchanged.
func (c *Context) WithMeta(meta *ContextMeta) *Context {
	if meta == nil {
		meta = &ContextMeta{}
	}
	if c == nil {
		return NewContext(meta, nil)
	}
	return c.rebind(meta)
}

func (c *Context) rebind(meta *ContextMeta) *Context {
	if c == nil {
		return nil
	}
	return &Context{meta: meta, data: c.data, parent: c.parent.rebind(meta), alias: c.alias}
}

func (c *Context) withAlias(name string) *Context {
	for ; c != nil; c = c.parent {
		if c.alias == name {
			return c
		}
	}
	return nil
}

func (c *Context) register(b Binding) {
	if c.meta.OnAdd != nil {
		c.meta.OnAdd(b)
	}
}

func (c *Context) logger() *slog.Logger {
	if c.meta.Logger != nil {
		return c.meta.Logger
	}
	return slog.Default()
}

func orEmpty(ctx *Context) *Context {
	if ctx == nil {
		return NewContext(nil, nil)
	}
	return ctx
}
