package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/live"
)

// entrySpec holds the scalar fields of a node entry.
type entrySpec struct {
	Text    *string `mapstructure:"text"`
	Bind    *string `mapstructure:"bind"`
	Comment *string `mapstructure:"comment"`
	Element *string `mapstructure:"element"`
	Block   *string `mapstructure:"block"`
	Each    *string `mapstructure:"each"`
	As      string  `mapstructure:"as"`
}

// branchSpec holds the scalar fields of an if branch.
type branchSpec struct {
	When *string `mapstructure:"when"`
	Else bool    `mapstructure:"else"`
}

var kinds = []string{"text", "bind", "comment", "element", "block", "if", "each"}

// LoadTemplate reads a template description from r.
func LoadTemplate(r io.Reader) (*live.Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("E150").Wrap(err)
	}
	return parseTemplate(data, "<template>")
}

// LoadTemplateFile reads a template description from a file.
func LoadTemplateFile(path string) (*live.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E150").WithDetailf("cannot read %s", path).Wrap(err)
	}
	return parseTemplate(data, path)
}

func parseTemplate(data []byte, file string) (*live.Template, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return live.NewTemplate(), nil
		}
		return nil, errors.New("E150").WithDetail(err.Error()).Wrap(err)
	}

	p := &parser{file: file}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	nodes, err := p.list(root)
	if err != nil {
		return nil, err
	}
	return live.NewTemplate(nodes...), nil
}

type parser struct {
	file string
}

func (p *parser) fail(code string, n *yaml.Node, format string, args ...any) error {
	return errors.New(code).
		WithDetailf(format, args...).
		WithLocation(p.file, n.Line, n.Column)
}

func (p *parser) list(n *yaml.Node) ([]live.Node, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, p.fail("E150", n, "expected a list of node entries")
	}
	nodes := make([]live.Node, 0, len(n.Content))
	for _, item := range n.Content {
		node, err := p.entry(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// fields splits a mapping into its scalar values and its nested nodes.
func (p *parser) fields(n *yaml.Node) (map[string]any, map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, nil, p.fail("E150", n, "expected a mapping")
	}
	scalars := make(map[string]any)
	nested := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		if value.Kind == yaml.ScalarNode {
			var v any
			if err := value.Decode(&v); err != nil {
				return nil, nil, p.fail("E150", value, "%s: %v", key, err)
			}
			if v == nil {
				if !isKind(key) {
					continue
				}
				v = ""
			}
			scalars[key] = v
			continue
		}
		nested[key] = value
	}
	return scalars, nested, nil
}

func (p *parser) decode(n *yaml.Node, input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return p.fail("E150", n, "%v", err)
	}
	return nil
}

func (p *parser) entry(n *yaml.Node) (live.Node, error) {
	scalars, nested, err := p.fields(n)
	if err != nil {
		return nil, err
	}

	kind, err := p.kindOf(n, scalars, nested)
	if err != nil {
		return nil, err
	}

	var spec entrySpec
	if err := p.decode(n, scalars, &spec); err != nil {
		return nil, err
	}

	var node live.Node
	switch kind {
	case "text":
		node = live.NewText(*spec.Text)
	case "bind":
		node = live.NewDynamicText(expression(*spec.Bind))
	case "comment":
		node, err = p.comment(spec, nested)
	case "element":
		node, err = p.element(n, *spec.Element, nested)
	case "block":
		var children []live.Node
		if children, err = p.children(nested, "children"); err == nil {
			node = live.NewBlock(expression(*spec.Block), children...)
		}
	case "if":
		node, err = p.conditional(nested["if"])
		delete(nested, "if")
	default:
		node, err = p.each(spec, nested)
	}
	if err != nil {
		return nil, err
	}
	if err := p.noNested(nested); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *parser) kindOf(n *yaml.Node, scalars map[string]any, nested map[string]*yaml.Node) (string, error) {
	var found []string
	for _, k := range kinds {
		_, isScalar := scalars[k]
		_, isNested := nested[k]
		if isScalar || isNested {
			found = append(found, k)
		}
	}
	if len(found) != 1 {
		keys := make([]string, 0, len(scalars)+len(nested))
		for k := range scalars {
			keys = append(keys, k)
		}
		for k := range nested {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", p.fail("E151", n, "entry has keys %s", strings.Join(keys, ", "))
	}

	kind := found[0]
	switch kind {
	case "if":
		if _, ok := nested["if"]; !ok {
			return "", p.fail("E150", n, "if expects a list of branches")
		}
	case "comment":
	default:
		if _, ok := nested[kind]; ok {
			return "", p.fail("E150", nested[kind], "%s expects a scalar value", kind)
		}
	}
	return kind, nil
}

// noNested reports nested values that were left unconsumed.
func (p *parser) noNested(nested map[string]*yaml.Node) error {
	for key, n := range nested {
		return p.fail("E150", n, "unexpected key %q", key)
	}
	return nil
}

func (p *parser) children(nested map[string]*yaml.Node, key string) ([]live.Node, error) {
	n, ok := nested[key]
	if !ok {
		return nil, nil
	}
	delete(nested, key)
	return p.list(n)
}

func (p *parser) comment(spec entrySpec, nested map[string]*yaml.Node) (live.Node, error) {
	if spec.Comment != nil {
		return live.NewComment(*spec.Comment), nil
	}
	n := nested["comment"]
	delete(nested, "comment")
	path, err := p.bindRef(n)
	if err != nil {
		return nil, err
	}
	return live.NewDynamicComment(path), nil
}

// bindRef decodes a {bind: path} mapping.
func (p *parser) bindRef(n *yaml.Node) (*live.Expression, error) {
	scalars, nested, err := p.fields(n)
	if err != nil {
		return nil, err
	}
	if err := p.noNested(nested); err != nil {
		return nil, err
	}
	var ref struct {
		Bind *string `mapstructure:"bind"`
	}
	if err := p.decode(n, scalars, &ref); err != nil {
		return nil, err
	}
	if ref.Bind == nil {
		return nil, p.fail("E150", n, "expected {bind: path}")
	}
	return expression(*ref.Bind), nil
}

func (p *parser) element(n *yaml.Node, tag string, nested map[string]*yaml.Node) (live.Node, error) {
	if tag == "" {
		return nil, p.fail("E150", n, "element needs a tag name")
	}

	var attrs *live.AttributesMap
	if an, ok := nested["attrs"]; ok {
		delete(nested, "attrs")
		var err error
		if attrs, err = p.attrs(an); err != nil {
			return nil, err
		}
	}

	children, err := p.children(nested, "children")
	if err != nil {
		return nil, err
	}
	return live.NewElement(tag, attrs, children...), nil
}

func (p *parser) attrs(n *yaml.Node) (*live.AttributesMap, error) {
	if n.Kind != yaml.MappingNode {
		return nil, p.fail("E150", n, "attrs expects a mapping")
	}
	attrs := live.NewAttributesMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, value := n.Content[i].Value, n.Content[i+1]
		if value.Kind == yaml.MappingNode {
			expr, err := p.bindRef(value)
			if err != nil {
				return nil, err
			}
			attrs.Set(name, live.NewDynamicAttribute(expr))
			continue
		}
		if value.Kind != yaml.ScalarNode {
			return nil, p.fail("E150", value, "attribute %s must be a scalar or {bind: path}", name)
		}
		var v any
		if err := value.Decode(&v); err != nil {
			return nil, p.fail("E150", value, "attribute %s: %v", name, err)
		}
		attrs.Set(name, live.NewAttribute(literal(v)))
	}
	return attrs, nil
}

func (p *parser) conditional(n *yaml.Node) (live.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, p.fail("E150", n, "if expects a list of branches")
	}
	exprs := make([]*live.Expression, 0, len(n.Content))
	branches := make([][]live.Node, 0, len(n.Content))
	for _, bn := range n.Content {
		scalars, nested, err := p.fields(bn)
		if err != nil {
			return nil, err
		}
		var spec branchSpec
		if err := p.decode(bn, scalars, &spec); err != nil {
			return nil, err
		}
		children, err := p.children(nested, "children")
		if err != nil {
			return nil, err
		}
		if err := p.noNested(nested); err != nil {
			return nil, err
		}

		switch {
		case spec.Else && spec.When == nil:
			exprs = append(exprs, live.ElseExpression())
		case !spec.Else && spec.When != nil:
			exprs = append(exprs, expression(*spec.When))
		default:
			return nil, p.fail("E150", bn, "a branch needs either when or else")
		}
		branches = append(branches, children)
	}
	return live.NewConditionalBlock(exprs, branches), nil
}

func (p *parser) each(spec entrySpec, nested map[string]*yaml.Node) (live.Node, error) {
	children, err := p.children(nested, "children")
	if err != nil {
		return nil, err
	}
	var elseChildren []live.Node
	if en, ok := nested["else"]; ok {
		delete(nested, "else")
		if elseChildren, err = p.list(en); err != nil {
			return nil, err
		}
		if elseChildren == nil {
			elseChildren = []live.Node{}
		}
	}
	each := live.NewEachBlock(expression(*spec.Each), children, elseChildren)
	each.Alias = strings.TrimPrefix(spec.As, "#")
	return each, nil
}

func isKind(key string) bool {
	for _, k := range kinds {
		if k == key {
			return true
		}
	}
	return false
}

func expression(path string) *live.Expression {
	if path == "." {
		path = ""
	}
	return live.NewExpression(path)
}

// literal keeps booleans for boolean attributes and renders other scalars
// as text.
func literal(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		return t
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
