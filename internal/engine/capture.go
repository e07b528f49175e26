package engine

import (
	"go.uber.org/zap"

	"pcbmask/internal/svgdom"
)

// CaptureMasks copies each of the fixed mask subtrees out of the working
// tree, in fixed order. Each copy is retagged to a plain group so it
// renders as ordinary content instead of a masking definition, and its
// inline text is cleared to avoid carrying over formatting whitespace.
// The working tree itself is not modified; each capture is an independent
// parent-less deep copy. Any mask identifier absent from the document
// fails the whole operation with a NotFoundError.
func (s *Session) CaptureMasks() error {
	for _, id := range maskIDs {
		el, err := svgdom.FindByID(s.ns, s.work.Root(), id)
		if err != nil {
			return err
		}
		cp := el.Copy()
		cp.Tag = "g"
		cp.SetText("")
		s.masks.put(id, cp)
		s.log.Debug("captured mask", zap.String("id", id))
	}
	return nil
}
