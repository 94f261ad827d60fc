// Package dom is the node-tree capability set tether renders into.
//
// Nodes are golang.org/x/net/html nodes, so a tree built one node at a time
// and a tree produced by the HTML5 parser (Parse) have the same shape and
// can be compared node by node. The package only exposes the primitives the
// engine needs: create, append, insert, remove, attribute access, child
// lists, text content and serialization.
package dom
