package engine

import (
	"go.uber.org/zap"

	"pcbmask/internal/svgdom"
)

// IsolateBoard strips the working tree down to the board fragment. The
// component fragment is removed outright; the board loses its direct
// rendering layers and every mask definition beneath it together with the
// wrapper holding it; masking references are then rewritten document-wide.
// Destructive and non-reversible; use Reset to start over.
func (s *Session) IsolateBoard() error {
	comp, err := svgdom.FindByID(s.ns, s.work.Root(), ComponentID)
	if err != nil {
		return err
	}
	if p := comp.Parent(); p != nil {
		p.RemoveChild(comp)
	}

	board, err := s.board()
	if err != nil {
		return err
	}
	layers, err := svgdom.RemoveByTag(s.ns, board, svgdom.NSSVG, "g", false, false)
	if err != nil {
		return err
	}
	defs, err := svgdom.RemoveByTag(s.ns, board, svgdom.NSSVG, "mask", true, true)
	if err != nil {
		return err
	}
	refs := svgdom.RemoveAttrRenameID(s.work.Root(), "mask")
	s.log.Debug("isolated board",
		zap.Int("layers_removed", layers),
		zap.Int("mask_defs_removed", defs),
		zap.Int("mask_refs_stripped", refs))
	return nil
}

// StripMasks removes masking while keeping the component layers: masking
// references are rewritten document-wide, mask definitions are deleted in
// place (their parents kept), and editor metadata (the sodipodi namedview
// and the document description) is dropped.
func (s *Session) StripMasks() error {
	root := s.work.Root()
	refs := svgdom.RemoveAttrRenameID(root, "mask")
	defs, err := svgdom.RemoveByTag(s.ns, root, svgdom.NSSVG, "mask", true, false)
	if err != nil {
		return err
	}
	if err := s.removeEditorElements(); err != nil {
		return err
	}
	s.log.Debug("stripped masks",
		zap.Int("mask_defs_removed", defs),
		zap.Int("mask_refs_stripped", refs))
	return nil
}

// removeEditorElements drops the editor-specific direct children of the
// root that downstream tools choke on.
func (s *Session) removeEditorElements() error {
	root := s.work.Root()
	if _, err := svgdom.RemoveByTag(s.ns, root, svgdom.NSSodipodi, "namedview", false, false); err != nil {
		return err
	}
	if _, err := svgdom.RemoveByTag(s.ns, root, svgdom.NSSVG, "desc", false, false); err != nil {
		return err
	}
	return nil
}

// Clean drops artifacts the upstream renderer leaves behind: empty groups,
// the highlight container, and any metadata or namedview elements.
func (s *Session) Clean() error {
	root := s.work.Root()
	if _, err := svgdom.PruneEmptyGroups(s.ns, root); err != nil {
		return err
	}
	svgdom.RemoveByAttrValue(root, "id", "highlightContainer")
	if _, err := svgdom.RemoveByTag(s.ns, root, svgdom.NSSVG, "metadata", true, false); err != nil {
		return err
	}
	if _, err := svgdom.RemoveByTag(s.ns, root, svgdom.NSSodipodi, "namedview", true, false); err != nil {
		return err
	}
	return nil
}
