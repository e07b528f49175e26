package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// AddMaskPatterns grafts the captured masks into the board fragment, in
// store order, each inserted immediately before the board's current last
// child. The masks therefore end up contiguous, ahead of whatever was
// originally last. A board with no child elements has no anchor position
// and fails with an EmptyBoardError, leaving the mask store untouched.
func (s *Session) AddMaskPatterns() error {
	board, err := s.board()
	if err != nil {
		return err
	}
	if len(board.ChildElements()) == 0 {
		return &EmptyBoardError{ID: BoardID}
	}
	for _, name := range s.masks.names() {
		mask, _ := s.masks.get(name)
		children := board.ChildElements()
		anchor := children[len(children)-1]
		board.InsertChildAt(anchor.Index(), mask)
	}
	s.log.Debug("reinserted masks", zap.Int("count", s.masks.len()))
	return nil
}

// SaveMaskFiles writes one standalone document per captured mask into
// outDir, named <basename>_<maskname><ext>. Each mask is appended as the
// board fragment's last child, the whole working tree is serialized, and
// the mask is detached again before the next one; the board's child count
// is unchanged once the call returns.
func (s *Session) SaveMaskFiles(outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, name := range s.masks.names() {
		mask, _ := s.masks.get(name)
		board, err := s.board()
		if err != nil {
			return err
		}
		board.AddChild(mask)
		path := filepath.Join(outDir, s.base+"_"+name+s.ext)
		err = s.Save(path)
		board.RemoveChild(mask)
		if err != nil {
			return err
		}
		s.log.Info("wrote mask file", zap.String("path", path))
	}
	return nil
}

// SaveUnmasked writes the current working tree into outDir under the
// original basename with a no_masked suffix, returning the path written.
func (s *Session) SaveUnmasked(outDir string) (string, error) {
	path := filepath.Join(outDir, s.base+"_no_masked"+s.ext)
	return path, s.Save(path)
}

// Save serializes the working tree to path with an XML declaration,
// creating parent directories as needed. Cleaning and indentation follow
// the session options.
func (s *Session) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if s.opts.Clean {
		if err := s.Clean(); err != nil {
			return err
		}
	}
	ensureDeclaration(s.work)
	if s.opts.Indent > 0 {
		s.work.Indent(s.opts.Indent)
	}
	if err := s.work.WriteToFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ensureDeclaration(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	doc.InsertChildAt(0, &etree.ProcInst{
		Target: "xml",
		Inst:   `version="1.0" encoding="UTF-8"`,
	})
}
