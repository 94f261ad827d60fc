package live

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/dom"
)

// ReplaceBindings re-points every binding of frag at the corresponding
// node under existing, typically a tree parsed from server-rendered
// markup. The children of existing must have the same shape as the
// children of frag.Root.
//
// A markup parser merges adjacent text and drops empty text, so runs of
// consecutive text nodes are matched as a unit; when the run lengths
// differ, the existing run is re-split to match the fragment.
//
// The whole tree is validated before anything changes. On a mismatch
// existing is left untouched, no binding is re-pointed and the returned
// error carries one of the codes E040 to E043.
func ReplaceBindings(existing *html.Node, frag *Fragment) error {
	h := &hydrator{nodes: map[*html.Node]*html.Node{frag.Root: existing}}
	if err := h.walk(frag.Root, existing, ""); err != nil {
		return err
	}
	for _, s := range h.splits {
		s.apply()
	}
	for _, b := range frag.Bindings {
		b.retarget(h.nodes)
	}
	return nil
}

type hydrator struct {
	nodes  map[*html.Node]*html.Node
	splits []split
}

// split replaces a run of existing text nodes with a new run.
type split struct {
	parent *html.Node
	ref    *html.Node
	remove []*html.Node
	add    []*html.Node
}

func (s split) apply() {
	for _, n := range s.add {
		dom.InsertBefore(s.parent, n, s.ref)
	}
	for _, n := range s.remove {
		dom.Detach(n)
	}
}

func (h *hydrator) walk(want, have *html.Node, path string) error {
	a := dom.Children(want)
	b := dom.Children(have)

	i, j := 0, 0
	for i < len(a) {
		w := a[i]
		if w.Type == html.TextNode {
			k := textRunEnd(a, i)
			l := textRunEnd(b, j)
			var ref *html.Node
			if l < len(b) {
				ref = b[l]
			}
			if err := h.textRun(have, a[i:k], b[j:l], ref, path); err != nil {
				return err
			}
			i, j = k, l
			continue
		}

		if j >= len(b) {
			return mismatch("E043", w, nil, path)
		}
		x := b[j]
		if dom.KindOf(w) != dom.KindOf(x) {
			return mismatch("E040", w, x, path)
		}
		if w.Type == html.ElementNode {
			if dom.Tag(w) != dom.Tag(x) {
				return mismatch("E041", w, x, path)
			}
			if err := h.walk(w, x, childPath(path, x, j)); err != nil {
				return err
			}
		}
		h.nodes[w] = x
		i++
		j++
	}

	if j < len(b) {
		return mismatch("E043", nil, b[j], path)
	}
	return nil
}

func (h *hydrator) textRun(parent *html.Node, want, have []*html.Node, ref *html.Node, path string) error {
	if len(want) == len(have) {
		for k, w := range want {
			h.nodes[w] = have[k]
		}
		return nil
	}

	wantData, haveData := joinText(want), joinText(have)
	if wantData != haveData {
		switch {
		case len(have) == 0 && ref == nil:
			return mismatch("E043", want[0], nil, path)
		case len(have) == 0:
			return mismatch("E040", want[0], ref, path)
		default:
			return errors.New("E042").WithDetailf(
				"expected %q, found %q at %s", wantData, haveData, pathOrRoot(path))
		}
	}

	s := split{parent: parent, ref: ref, remove: have}
	if len(have) > 0 {
		s.ref = have[0]
	}
	for _, w := range want {
		n := dom.NewText(w.Data)
		s.add = append(s.add, n)
		h.nodes[w] = n
	}
	h.splits = append(h.splits, s)
	return nil
}

func textRunEnd(nodes []*html.Node, i int) int {
	for i < len(nodes) && nodes[i].Type == html.TextNode {
		i++
	}
	return i
}

func joinText(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.Data)
	}
	return sb.String()
}

func childPath(path string, n *html.Node, index int) string {
	step := fmt.Sprintf("%s[%d]", dom.Tag(n), index)
	if path == "" {
		return step
	}
	return path + " > " + step
}

func pathOrRoot(path string) string {
	if path == "" {
		return "top level"
	}
	return path
}

func mismatch(code string, want, have *html.Node, path string) error {
	return errors.New(code).WithDetailf(
		"expected %s, found %s at %s", describe(want), describe(have), pathOrRoot(path))
}

func describe(n *html.Node) string {
	if n == nil {
		return "nothing"
	}
	switch n.Type {
	case html.ElementNode:
		return "<" + dom.Tag(n) + ">"
	case html.TextNode:
		data := n.Data
		if len(data) > 20 {
			data = data[:20] + "..."
		}
		return fmt.Sprintf("text %q", data)
	case html.CommentNode:
		return "comment"
	default:
		return dom.KindOf(n).String()
	}
}
