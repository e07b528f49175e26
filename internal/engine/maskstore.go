package engine

import "github.com/beevik/etree"

// maskStore holds captured mask subtrees keyed by name. First-capture order
// is preserved; recapturing under an existing name overwrites in place.
type maskStore struct {
	order  []string
	byName map[string]*etree.Element
}

func newMaskStore() *maskStore {
	return &maskStore{byName: make(map[string]*etree.Element)}
}

func (m *maskStore) put(name string, el *etree.Element) {
	if _, ok := m.byName[name]; !ok {
		m.order = append(m.order, name)
	}
	m.byName[name] = el
}

func (m *maskStore) get(name string) (*etree.Element, bool) {
	el, ok := m.byName[name]
	return el, ok
}

func (m *maskStore) names() []string {
	return append([]string(nil), m.order...)
}

func (m *maskStore) len() int {
	return len(m.order)
}
