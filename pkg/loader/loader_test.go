package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/live"
)

func renderYAML(t *testing.T, src string, data any) string {
	t.Helper()
	tmpl, err := LoadTemplate(strings.NewReader(src))
	require.NoError(t, err)
	out, err := tmpl.HTML(live.NewContext(nil, data))
	require.NoError(t, err)
	return out
}

func TestLoadTemplateElements(t *testing.T) {
	src := `
- element: div
  attrs:
    id: page
    data-x: 24
    class: content fit
    hidden: false
  children:
    - text: "Hello, "
    - bind: name
- element: br
- comment: static
`
	got := renderYAML(t, src, map[string]any{"name": "Ann"})
	assert.Equal(t, `<div id="page" data-x="24" class="content fit">Hello, Ann</div><br><!--static-->`, got)
}

func TestLoadTemplateDynamicAttributes(t *testing.T) {
	src := `
- element: input
  attrs:
    type: checkbox
    checked: {bind: done}
    value: {bind: .}
`
	tmpl, err := LoadTemplate(strings.NewReader(src))
	require.NoError(t, err)

	var bindings []live.Binding
	meta := &live.ContextMeta{OnAdd: func(b live.Binding) { bindings = append(bindings, b) }}
	_, err = tmpl.Fragment(live.NewContext(meta, map[string]any{"done": true}))
	require.NoError(t, err)

	require.Len(t, bindings, 2)
	assert.Equal(t, live.KindAttribute, bindings[0].Kind())
	assert.Equal(t, "checked", bindings[0].(*live.AttributeBinding).Name())
	assert.Equal(t, "value", bindings[1].(*live.AttributeBinding).Name())
}

func TestLoadTemplateSections(t *testing.T) {
	src := `
- block: author
  children:
    - bind: name
- if:
    - when: admin
      children:
        - text: admin
    - else: true
      children:
        - text: guest
- each: items
  as: item
  children:
    - bind: "#item.label"
  else:
    - text: none
- comment: {bind: note}
`
	data := map[string]any{
		"author": map[string]any{"name": "Ann"},
		"items":  []any{map[string]any{"label": "a"}, map[string]any{"label": "b"}},
		"note":   "n",
	}
	want := "<!--{{author}}-->Ann<!--{{/}}-->" +
		"<!--{{if admin}}-->guest<!--{{/}}-->" +
		"<!--{{each items as #item}}-->ab<!--{{/}}-->" +
		"<!--n-->"
	assert.Equal(t, want, renderYAML(t, src, data))

	empty := "<!--{{author}}--><!--{{/}}-->" +
		"<!--{{if admin}}-->admin<!--{{/}}-->" +
		"<!--{{each items as #item}}-->none<!--{{/}}-->" +
		"<!---->"
	assert.Equal(t, empty, renderYAML(t, src, map[string]any{"admin": true}))
}

func TestLoadTemplateEmpty(t *testing.T) {
	tmpl, err := LoadTemplate(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tmpl.Nodes)
}

func TestLoadTemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"not a list", "element: div", "E150"},
		{"invalid yaml", "- element: [", "E150"},
		{"no kind", "- children: []", "E151"},
		{"two kinds", "- text: a\n  bind: b", "E151"},
		{"unknown key", "- text: a\n  colour: red", "E150"},
		{"unknown nested key", "- text: a\n  extra: [1]", "E150"},
		{"nested scalar kind", "- element: [div]", "E150"},
		{"branch without when", "- if:\n    - children: []", "E150"},
		{"bad attrs", "- element: div\n  attrs: [a]", "E150"},
		{"bad bind ref", "- element: div\n  attrs:\n    id: {path: x}", "E150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTemplate(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}
}

func TestLoadTemplateFileLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	src := "- text: ok\n- element: div\n  bogus: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	_, err := LoadTemplateFile(path)
	require.Error(t, err)

	te, ok := err.(*errors.TetherError)
	require.True(t, ok)
	require.NotNil(t, te.Location)
	assert.Equal(t, path, te.Location.File)
	assert.Equal(t, 2, te.Location.Line)
	assert.NotEmpty(t, te.Context)
}

func TestLoadTemplateFileMissing(t *testing.T) {
	_, err := LoadTemplateFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.HasCode(err, "E150"))
}

func TestLoadData(t *testing.T) {
	data, err := LoadData(strings.NewReader("title: Hi\nitems: [1, 2]\nuser: {name: Ann}\n"))
	require.NoError(t, err)

	m, ok := data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hi", m["title"])
	assert.Equal(t, []any{1, 2}, m["items"])
	assert.Equal(t, map[string]any{"name": "Ann"}, m["user"])
}

func TestLoadDataJSON(t *testing.T) {
	data, err := LoadData(strings.NewReader(`{"show": true, "n": 3}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"show": true, "n": 3}, data)
}

func TestLoadDataErrors(t *testing.T) {
	_, err := LoadData(strings.NewReader("a: [1"))
	assert.True(t, errors.HasCode(err, "E152"))

	data, err := LoadData(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = LoadDataFile("")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = LoadDataFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.HasCode(err, "E152"))
}
