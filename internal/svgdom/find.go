package svgdom

import (
	"github.com/beevik/etree"
)

// Walk visits every element below scope in document order. The scope
// element itself is not visited. Returning false from visit stops the walk.
func Walk(scope *etree.Element, visit func(*etree.Element) bool) {
	walk(scope, visit)
}

func walk(scope *etree.Element, visit func(*etree.Element) bool) bool {
	for _, ch := range scope.ChildElements() {
		if !visit(ch) {
			return false
		}
		if !walk(ch, visit) {
			return false
		}
	}
	return true
}

// FindByID returns the first descendant of scope in the default (SVG)
// namespace whose id attribute equals id. Malformed documents may carry
// duplicate ids; the first match in document order wins and no detection
// is attempted. Zero matches yield a NotFoundError.
func FindByID(ns *Namespaces, scope *etree.Element, id string) (*etree.Element, error) {
	uri, err := ns.Resolve(NSSVG)
	if err != nil {
		return nil, err
	}
	var found *etree.Element
	Walk(scope, func(el *etree.Element) bool {
		if el.NamespaceURI() == uri && el.SelectAttrValue("id", "") == id {
			found = el
			return false
		}
		return true
	})
	if found == nil {
		return nil, &NotFoundError{ID: id}
	}
	return found, nil
}

// FindByTag returns the direct children (recursive=false) or all
// descendants (recursive=true) of scope whose local tag is tag and whose
// resolved namespace matches alias.
func FindByTag(ns *Namespaces, scope *etree.Element, alias, tag string, recursive bool) ([]*etree.Element, error) {
	uri, err := ns.Resolve(alias)
	if err != nil {
		return nil, err
	}
	var out []*etree.Element
	if recursive {
		Walk(scope, func(el *etree.Element) bool {
			if el.Tag == tag && el.NamespaceURI() == uri {
				out = append(out, el)
			}
			return true
		})
		return out, nil
	}
	for _, el := range scope.ChildElements() {
		if el.Tag == tag && el.NamespaceURI() == uri {
			out = append(out, el)
		}
	}
	return out, nil
}

// FindByAttrValue returns all descendants of scope carrying attr with
// exactly the given value.
func FindByAttrValue(scope *etree.Element, attr, value string) []*etree.Element {
	var out []*etree.Element
	Walk(scope, func(el *etree.Element) bool {
		if a := el.SelectAttr(attr); a != nil && a.Value == value {
			out = append(out, el)
		}
		return true
	})
	return out
}
