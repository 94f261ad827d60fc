package live

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/vango-dev/tether/internal/errors"
)

// Expression resolves a dotted path against a Context.
//
// An empty path yields the context's own data. A path starting with
// "#name" is resolved from the nearest context aliased as name.
//
// Segments match map keys, slice indices and struct fields. A struct field
// matches by json tag name or case-insensitively by Go name; fields of
// embedded structs are promoted as in Go.
type Expression struct {
	path     string
	alias    string
	segments []string
	isElse   bool
}

// NewExpression creates an expression for a dotted path such as
// "author.name", "items.0" or "#item.title".
func NewExpression(path string) *Expression {
	e := &Expression{path: path}
	p := path
	if strings.HasPrefix(p, "#") {
		name, rest, _ := strings.Cut(p[1:], ".")
		e.alias = name
		p = rest
	}
	if p != "" {
		e.segments = strings.Split(p, ".")
	}
	return e
}

// ElseExpression returns the catch-all condition of a ConditionalBlock.
func ElseExpression() *Expression {
	return &Expression{isElse: true}
}

// IsElse reports whether e is the catch-all condition.
func (e *Expression) IsElse() bool {
	return e.isElse
}

// String returns the source path, "." for the current item and "else" for
// the catch-all.
func (e *Expression) String() string {
	switch {
	case e.isElse:
		return "else"
	case e.path == "":
		return "."
	default:
		return e.path
	}
}

// Get resolves the expression. The first path segment is looked up in ctx
// and then in each parent until some scope has it; the remaining segments
// are resolved from there. Unresolved paths yield nil.
func (e *Expression) Get(ctx *Context) any {
	if ctx == nil || e.isElse {
		return nil
	}
	if e.alias != "" {
		scope := ctx.withAlias(e.alias)
		if scope == nil {
			return nil
		}
		return resolve(scope.data, e.segments)
	}
	if len(e.segments) == 0 {
		return ctx.data
	}
	for c := ctx; c != nil; c = c.parent {
		if v, ok := lookup(c.data, e.segments[0]); ok {
			return resolve(v, e.segments[1:])
		}
	}
	return nil
}

// GetForConditional returns the value used to select a conditional branch.
// The catch-all condition always yields true.
func (e *Expression) GetForConditional(ctx *Context) any {
	if e.isElse {
		return true
	}
	return e.Get(ctx)
}

// Truthy reports whether v selects a conditional branch. Nil values
// (including nil pointers, maps and slices), false and empty slices or
// arrays are falsy. Everything else is truthy, including 0 and "".
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	case reflect.Slice, reflect.Array:
		return rv.Len() > 0
	default:
		return true
	}
}

func resolve(v any, segments []string) any {
	for _, seg := range segments {
		next, ok := lookup(v, seg)
		if !ok {
			return nil
		}
		v = next
	}
	return v
}

// lookup resolves one path segment in data: a map key, a struct field
// (json tag or case-insensitive name) or a slice index.
func lookup(data any, key string) (any, bool) {
	if data == nil {
		return nil, false
	}
	if m, ok := data.(map[string]any); ok {
		v, ok := m[key]
		return v, ok
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		return structField(rv, key)
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	default:
		return nil, false
	}
}

func structField(rv reflect.Value, key string) (any, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name == key {
			return fieldValue(rv.Field(i))
		}
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.IsExported() && strings.EqualFold(f.Name, key) {
			return fieldValue(rv.Field(i))
		}
	}

	// Fields of embedded structs are promoted, shallowest first.
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.Anonymous {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if !f.IsExported() || fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Kind() != reflect.Struct {
			continue
		}
		if v, ok := structField(fv, key); ok {
			return v, true
		}
	}
	return nil, false
}

func fieldValue(fv reflect.Value) (any, bool) {
	if !fv.CanInterface() {
		return nil, false
	}
	return fv.Interface(), true
}

// sequence converts the value of an each expression to its items.
// Nil means no items; anything but a slice or array is an error.
func sequence(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, nil
	default:
		return nil, errors.New("E052").WithDetailf("got %T", v)
	}
}

// sameValue reports whether two block values are known to render the same:
// both nil, or equal scalars of the same type. Composite values never are.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch reflect.ValueOf(a).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return a == b
	default:
		return false
	}
}
