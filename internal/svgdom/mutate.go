package svgdom

import (
	"github.com/beevik/etree"
)

// RemoveByTag removes every element below scope matching alias:tag. With
// removeParent set, the match's parent is removed from the grandparent
// instead, taking the match with it; this serves wrappers that exist solely
// to hold the matched element. When the match's parent is the document root
// the grandparent is absent and the removal is skipped, since the root
// cannot be removed from itself. Returns the number of removals performed.
func RemoveByTag(ns *Namespaces, scope *etree.Element, alias, tag string, recursive, removeParent bool) (int, error) {
	matches, err := FindByTag(ns, scope, alias, tag, recursive)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, m := range matches {
		parent := m.Parent()
		if parent == nil {
			continue
		}
		if removeParent {
			grand := parent.Parent()
			if grand == nil || grand.Tag == "" {
				continue
			}
			if grand.RemoveChild(parent) != nil {
				removed++
			}
			continue
		}
		if parent.RemoveChild(m) != nil {
			removed++
		}
	}
	return removed, nil
}

// RemoveAttrRenameID deletes attr from every descendant of scope that
// carries it, appending "_" plus the attribute's value to the element's id
// first so the removed relationship stays readable downstream. Renames are
// applied in document order and independently; resulting id collisions are
// not detected. Returns the number of elements rewritten.
func RemoveAttrRenameID(scope *etree.Element, attr string) int {
	var matches []*etree.Element
	Walk(scope, func(el *etree.Element) bool {
		if el.SelectAttr(attr) != nil {
			matches = append(matches, el)
		}
		return true
	})
	for _, el := range matches {
		val := el.SelectAttrValue(attr, "")
		el.CreateAttr("id", el.SelectAttrValue("id", "")+"_"+val)
		el.RemoveAttr(attr)
	}
	return len(matches)
}

// RemoveByAttrValue deletes every descendant of scope carrying attr=value
// outright, with no id rewrite. Returns the number of removals.
func RemoveByAttrValue(scope *etree.Element, attr, value string) int {
	removed := 0
	for _, el := range FindByAttrValue(scope, attr, value) {
		if p := el.Parent(); p != nil && p.RemoveChild(el) != nil {
			removed++
		}
	}
	return removed
}
