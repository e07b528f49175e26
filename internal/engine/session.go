// Package engine implements the mask-isolation engine for PcbDraw SVG
// renders. A Session owns one loaded document: it captures the named mask
// subtrees, strips the masking references that depend on them, and either
// grafts the captured masks back into the board fragment or exports each
// one as a standalone document.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"pcbmask/internal/inkscape"
	"pcbmask/internal/svgdom"
)

// Fixed identifiers every input document is expected to carry.
const (
	BoardID     = "boardContainer"
	ComponentID = "componentContainer"
)

// maskIDs are captured in this order.
var maskIDs = []string{"hole-mask", "pads-mask-silkscreen", "pads-mask"}

// MaskIDs returns the fixed mask identifiers in capture order.
func MaskIDs() []string {
	return append([]string(nil), maskIDs...)
}

// Options configure a Session.
type Options struct {
	// Logger receives debug-level operation traces. Nil means no logging.
	Logger *zap.Logger

	// Normalizer rewrites inputs lacking the svg namespace alias. Nil
	// selects the Inkscape default.
	Normalizer *inkscape.Normalizer

	// Indent is the number of spaces per nesting level on save; 0 writes
	// the tree as-is.
	Indent int

	// Clean prunes editor artifacts before each save.
	Clean bool
}

// Session is one engine session over one loaded document. The original
// parse is kept immutable so the working tree can be rebuilt without
// re-reading the file; every mutation applies to the working tree only.
// Sessions are not safe for concurrent use.
type Session struct {
	path string
	base string
	ext  string

	opts Options
	log  *zap.Logger

	ns    *svgdom.Namespaces
	orig  *etree.Document
	work  *etree.Document
	masks *maskStore
}

// Load parses the SVG at path and prepares a working tree. If the document
// does not declare the svg namespace alias it is first rewritten in place
// by the normalizer and re-parsed. The board fragment must be resolvable.
func Load(ctx context.Context, path string, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Normalizer == nil {
		opts.Normalizer = inkscape.Default()
	}

	s := &Session{
		path:  path,
		ext:   filepath.Ext(path),
		opts:  opts,
		log:   opts.Logger,
		masks: newMaskStore(),
	}
	s.base = strings.TrimSuffix(filepath.Base(path), s.ext)

	doc, ns, err := parse(path)
	if err != nil {
		return nil, err
	}
	if !ns.Declared(svgdom.NSSVG) {
		s.log.Debug("svg namespace alias missing, delegating to normalizer",
			zap.String("path", path),
			zap.String("normalizer", opts.Normalizer.Bin))
		if err := opts.Normalizer.Normalize(ctx, path); err != nil {
			return nil, err
		}
		if doc, ns, err = parse(path); err != nil {
			return nil, err
		}
	}

	s.orig = doc
	s.ns = ns
	s.work = doc.Copy()
	if _, err := s.board(); err != nil {
		return nil, err
	}
	s.log.Debug("loaded document", zap.String("path", path))
	return s, nil
}

func parse(path string) (*etree.Document, *svgdom.Namespaces, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("parse %s: no root element", path)
	}
	return doc, svgdom.ParseNamespaces(root), nil
}

// Reset rebuilds the working tree from the original parse, discarding all
// mutations since load. Captured masks are kept as-is.
func (s *Session) Reset() error {
	s.work = s.orig.Copy()
	_, err := s.board()
	return err
}

// board re-resolves the board fragment; its identity may have shifted since
// the working tree was last touched.
func (s *Session) board() (*etree.Element, error) {
	return svgdom.FindByID(s.ns, s.work.Root(), BoardID)
}

// Path returns the input file the session was loaded from.
func (s *Session) Path() string {
	return s.path
}

// Mask returns the captured subtree stored under name.
func (s *Session) Mask(name string) (*etree.Element, bool) {
	return s.masks.get(name)
}

// MaskNames returns the stored mask names in capture order.
func (s *Session) MaskNames() []string {
	return s.masks.names()
}
