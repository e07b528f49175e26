// Package svgdom provides namespace-aware lookup and mutation primitives
// for SVG document trees. All searches run in document order (depth-first
// pre-order) and every tag lookup resolves a short namespace alias against
// the alias table captured from the document root at load time.
package svgdom

import (
	"github.com/beevik/etree"
)

// Canonical namespace aliases used by PcbDraw renders.
const (
	NSSVG      = "svg"
	NSSodipodi = "sodipodi"
	NSInkscape = "inkscape"
	NSXLink    = "xlink"
)

// Namespaces is the alias-to-URI table of a loaded document. It is built
// once from the root element's xmlns:prefix declarations; an alias that was
// never declared resolves to a NamespaceError.
type Namespaces struct {
	uris map[string]string
}

// ParseNamespaces captures the prefix declarations of root. Only explicit
// xmlns:prefix attributes register an alias; the default (unprefixed)
// namespace is matched through element namespace resolution, not through
// this table. Documents straight out of a plain SVG writer therefore leave
// the "svg" alias undeclared until the normalizer rewrites them.
func ParseNamespaces(root *etree.Element) *Namespaces {
	ns := &Namespaces{uris: make(map[string]string)}
	for _, a := range root.Attr {
		if a.Space == "xmlns" {
			ns.uris[a.Key] = a.Value
		}
	}
	return ns
}

// Resolve returns the URI declared for alias.
func (n *Namespaces) Resolve(alias string) (string, error) {
	uri, ok := n.uris[alias]
	if !ok {
		return "", &NamespaceError{Alias: alias}
	}
	return uri, nil
}

// Declared reports whether alias has a declaration.
func (n *Namespaces) Declared(alias string) bool {
	_, ok := n.uris[alias]
	return ok
}
