package svgdom

import (
	"github.com/beevik/etree"
)

// PruneEmpty removes childless descendants of scope that carry no text and
// exactly one attribute (assumed to be the id). Leftover empty wrappers are
// an artifact of the upstream renderer and carry no visual meaning.
//
// This is a single pass: children with element children are descended into
// before their own emptiness would be checked, and an element that becomes
// empty only because its children were pruned is not re-evaluated. Callers
// wanting a fixed point must iterate themselves.
func PruneEmpty(scope *etree.Element) int {
	removed := 0
	for _, ch := range scope.ChildElements() {
		if len(ch.ChildElements()) > 0 {
			removed += PruneEmpty(ch)
			continue
		}
		if ch.Text() == "" && len(ch.Attr) == 1 {
			scope.RemoveChild(ch)
			removed++
		}
	}
	return removed
}

// PruneEmptyGroups removes every descendant group element of scope that has
// zero children and exactly one attribute named id. One recursive search,
// not repeated to a fixed point.
func PruneEmptyGroups(ns *Namespaces, scope *etree.Element) (int, error) {
	groups, err := FindByTag(ns, scope, NSSVG, "g", true)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, g := range groups {
		if len(g.ChildElements()) != 0 || len(g.Attr) != 1 {
			continue
		}
		if a := g.Attr[0]; a.Space != "" || a.Key != "id" {
			continue
		}
		if p := g.Parent(); p != nil && p.RemoveChild(g) != nil {
			removed++
		}
	}
	return removed, nil
}
