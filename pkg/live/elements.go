package live

import "golang.org/x/net/html/atom"

// voidElements have no content and no end tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// isVoidElement reports whether tag (lower case) is a void element.
// Unknown tags are never void.
func isVoidElement(tag string) bool {
	a := atom.Lookup([]byte(tag))
	return a != 0 && voidElements[a]
}
