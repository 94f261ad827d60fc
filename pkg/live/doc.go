// Package live compiles immutable template trees into markup or into live
// node trees wired to bindings.
//
// A Template is an ordered list of node templates: Text, DynamicText,
// Comment, DynamicComment, Element, Block, ConditionalBlock and EachBlock.
// It can be rendered two ways against a Context:
//
//	html, err := tmpl.HTML(ctx)        // one-shot markup, no bindings
//	frag, err := tmpl.Fragment(ctx)    // nodes + one Binding per dynamic point
//
// # Bindings
//
// Every dynamic template node produces exactly one Binding when a fragment
// is built. Bindings are reported through ContextMeta.OnAdd in document
// order and are also collected in Fragment.Bindings. A binding updates the
// nodes it owns in place:
//
//	binding.Update(live.NewContext(meta, newData))
//
// Bindings of each blocks are *EachBinding values, which also apply list
// splices (Insert, Remove, Move) after the caller has mutated the data.
//
// # Sections
//
// Block, ConditionalBlock and EachBlock delimit their content with a start
// and an end comment node. Both render paths emit the same markers, so
// parsed markup and built fragments have the same shape.
//
// # Hydration
//
// ReplaceBindings takes a node tree parsed from markup and a fragment built
// from the same template and data, checks that both trees have the same
// structure and moves every binding of the fragment onto the parsed nodes.
// On mismatch it fails without touching any binding.
package live
