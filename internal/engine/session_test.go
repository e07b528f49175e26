package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbmask/internal/inkscape"
	"pcbmask/internal/svgdom"
)

// boardFixture is a trimmed PcbDraw render: a board fragment with five
// children (the mask definitions plus four layers), a component fragment,
// and editor metadata.
const boardFixture = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:svg="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd" width="100" height="100">
  <sodipodi:namedview id="namedview7"/>
  <desc id="desc1">PcbDraw render</desc>
  <g id="boardContainer">
    <defs id="board-defs">
      <mask id="hole-mask"><rect id="hole-rect" x="0" y="0" width="10" height="10" fill="white"/></mask>
      <mask id="pads-mask-silkscreen"><rect id="silk-rect" x="0" y="0" width="5" height="5" fill="white"/></mask>
      <mask id="pads-mask"><rect id="pads-rect" x="0" y="0" width="3" height="3" fill="white"/></mask>
    </defs>
    <g id="substrate" mask="url(#hole-mask)"><path id="outline" d="M0 0h100v100H0z"/></g>
    <g id="copper" mask="url(#pads-mask)"><path id="trace" d="M1 1h5"/></g>
    <g id="silkscreen" mask="url(#pads-mask-silkscreen)"><path id="label" d="M2 2h3"/></g>
    <g id="frame"><rect id="edge" x="0" y="0" width="100" height="100"/></g>
  </g>
  <g id="componentContainer">
    <g id="comp-r1" mask="url(#hole-mask)"><path id="r1-body" d="M3 3h2"/></g>
  </g>
</svg>
`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.svg")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func loadFixture(t *testing.T) *Session {
	t.Helper()
	sess, err := Load(context.Background(), writeFixture(t, boardFixture), Options{})
	require.NoError(t, err)
	return sess
}

func renderElement(t *testing.T, el *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	require.NoError(t, err)
	return s
}

func renderDoc(t *testing.T, doc *etree.Document) string {
	t.Helper()
	s, err := doc.WriteToString()
	require.NoError(t, err)
	return s
}

func boardOf(t *testing.T, s *Session) *etree.Element {
	t.Helper()
	board, err := s.board()
	require.NoError(t, err)
	return board
}

func TestLoad(t *testing.T) {
	t.Run("captures file metadata and resolves the board", func(t *testing.T) {
		sess := loadFixture(t)
		assert.Equal(t, "board", sess.base)
		assert.Equal(t, ".svg", sess.ext)
		assert.NotNil(t, boardOf(t, sess))
	})

	t.Run("missing board fragment fails", func(t *testing.T) {
		fixture := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" xmlns:svg="http://www.w3.org/2000/svg"><g id="other"/></svg>`
		_, err := Load(context.Background(), writeFixture(t, fixture), Options{})
		var nf *svgdom.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, BoardID, nf.ID)
	})

	t.Run("missing svg alias delegates to the normalizer", func(t *testing.T) {
		fixture := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><g id="boardContainer"><rect id="r"/></g></svg>`
		_, err := Load(context.Background(), writeFixture(t, fixture), Options{
			Normalizer: &inkscape.Normalizer{Bin: "pcbmask-test-no-such-binary"},
		})
		var procErr *inkscape.ExternalProcessError
		require.ErrorAs(t, err, &procErr)
	})

	t.Run("reparses after the normalizer rewrites the file", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("requires GNU sed")
		}
		fixture := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><g id="boardContainer"><rect id="r"/></g></svg>`
		path := writeFixture(t, fixture)
		norm := &inkscape.Normalizer{
			Bin:  "sh",
			Args: []string{"-c", `sed -i 's|<svg |<svg xmlns:svg="http://www.w3.org/2000/svg" |' "$0"`},
		}
		sess, err := Load(context.Background(), path, Options{Normalizer: norm})
		require.NoError(t, err)
		assert.True(t, sess.ns.Declared(svgdom.NSSVG))
	})
}

func TestCaptureMasks(t *testing.T) {
	t.Run("stores three retagged copies", func(t *testing.T) {
		sess := loadFixture(t)
		require.NoError(t, sess.CaptureMasks())

		names := sess.MaskNames()
		assert.Equal(t, []string{"hole-mask", "pads-mask-silkscreen", "pads-mask"}, names)
		for _, name := range names {
			mask, ok := sess.Mask(name)
			require.True(t, ok)
			assert.Equal(t, "g", mask.Tag)
			assert.Equal(t, "", mask.Text())
			assert.Nil(t, mask.Parent(), "captures must be parent-less copies")
		}
	})

	t.Run("working tree is untouched", func(t *testing.T) {
		sess := loadFixture(t)
		before := renderDoc(t, sess.work)
		require.NoError(t, sess.CaptureMasks())
		assert.Empty(t, cmp.Diff(before, renderDoc(t, sess.work)))

		masks, err := svgdom.FindByTag(sess.ns, sess.work.Root(), svgdom.NSSVG, "mask", true)
		require.NoError(t, err)
		assert.Len(t, masks, 3, "definitions stay in the working tree")
	})

	t.Run("idempotent without intervening mutation", func(t *testing.T) {
		sess := loadFixture(t)
		require.NoError(t, sess.CaptureMasks())
		first := map[string]string{}
		for _, name := range sess.MaskNames() {
			mask, _ := sess.Mask(name)
			first[name] = renderElement(t, mask)
		}

		require.NoError(t, sess.CaptureMasks())
		for _, name := range sess.MaskNames() {
			mask, _ := sess.Mask(name)
			assert.Empty(t, cmp.Diff(first[name], renderElement(t, mask)))
		}
	})

	t.Run("missing mask identifier fails", func(t *testing.T) {
		fixture := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" xmlns:svg="http://www.w3.org/2000/svg">` +
			`<g id="boardContainer"><rect id="r"/></g></svg>`
		sess, err := Load(context.Background(), writeFixture(t, fixture), Options{})
		require.NoError(t, err)
		err = sess.CaptureMasks()
		var nf *svgdom.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "hole-mask", nf.ID)
	})
}

func TestIsolateBoard(t *testing.T) {
	sess := loadFixture(t)
	require.NoError(t, sess.CaptureMasks())
	require.NoError(t, sess.IsolateBoard())

	root := sess.work.Root()

	_, err := svgdom.FindByID(sess.ns, root, ComponentID)
	var nf *svgdom.NotFoundError
	assert.ErrorAs(t, err, &nf, "component fragment must be gone")

	assert.Empty(t, boardOf(t, sess).ChildElements(),
		"layers and mask wrappers must be stripped from the board")

	svgdom.Walk(root, func(el *etree.Element) bool {
		assert.Nil(t, el.SelectAttr("mask"), "no masking references may survive")
		return true
	})
}

func TestStripMasks(t *testing.T) {
	sess := loadFixture(t)
	require.NoError(t, sess.StripMasks())

	root := sess.work.Root()

	t.Run("references renamed and removed", func(t *testing.T) {
		el, err := svgdom.FindByID(sess.ns, root, "substrate_url(#hole-mask)")
		require.NoError(t, err)
		assert.Nil(t, el.SelectAttr("mask"))

		svgdom.Walk(root, func(el *etree.Element) bool {
			assert.Nil(t, el.SelectAttr("mask"))
			return true
		})
	})

	t.Run("definitions removed, wrappers kept", func(t *testing.T) {
		masks, err := svgdom.FindByTag(sess.ns, root, svgdom.NSSVG, "mask", true)
		require.NoError(t, err)
		assert.Empty(t, masks)
		_, err = svgdom.FindByID(sess.ns, root, "board-defs")
		assert.NoError(t, err, "the defs wrapper survives a plain strip")
	})

	t.Run("editor elements removed", func(t *testing.T) {
		views, err := svgdom.FindByTag(sess.ns, root, svgdom.NSSodipodi, "namedview", false)
		require.NoError(t, err)
		assert.Empty(t, views)
		descs, err := svgdom.FindByTag(sess.ns, root, svgdom.NSSVG, "desc", false)
		require.NoError(t, err)
		assert.Empty(t, descs)
	})

	t.Run("component layers kept", func(t *testing.T) {
		_, err := svgdom.FindByID(sess.ns, root, ComponentID)
		assert.NoError(t, err)
	})
}

func TestReset(t *testing.T) {
	sess := loadFixture(t)
	original := renderDoc(t, sess.orig)

	require.NoError(t, sess.CaptureMasks())
	require.NoError(t, sess.IsolateBoard())
	assert.NotEqual(t, original, renderDoc(t, sess.work), "isolation is destructive")

	require.NoError(t, sess.Reset())
	assert.Empty(t, cmp.Diff(original, renderDoc(t, sess.work)))
	assert.Len(t, sess.MaskNames(), 3, "reset keeps captured masks")
}

func TestAddMaskPatterns(t *testing.T) {
	t.Run("masks land contiguously before the previously last child", func(t *testing.T) {
		sess := loadFixture(t)
		require.NoError(t, sess.CaptureMasks())
		require.NoError(t, sess.StripMasks())

		before := boardOf(t, sess).ChildElements()
		require.Len(t, before, 5)
		lastID := before[len(before)-1].SelectAttrValue("id", "")

		require.NoError(t, sess.AddMaskPatterns())

		after := boardOf(t, sess).ChildElements()
		require.Len(t, after, 8)
		assert.Equal(t, lastID, after[len(after)-1].SelectAttrValue("id", ""))
		assert.Equal(t, "hole-mask", after[4].SelectAttrValue("id", ""))
		assert.Equal(t, "pads-mask-silkscreen", after[5].SelectAttrValue("id", ""))
		assert.Equal(t, "pads-mask", after[6].SelectAttrValue("id", ""))
	})

	t.Run("empty board fails and leaves the store alone", func(t *testing.T) {
		sess := loadFixture(t)
		require.NoError(t, sess.CaptureMasks())
		require.NoError(t, sess.IsolateBoard())
		require.Empty(t, boardOf(t, sess).ChildElements())

		err := sess.AddMaskPatterns()
		var empty *EmptyBoardError
		require.ErrorAs(t, err, &empty)
		assert.Equal(t, BoardID, empty.ID)
		assert.Len(t, sess.MaskNames(), 3)
		for _, name := range sess.MaskNames() {
			mask, ok := sess.Mask(name)
			require.True(t, ok)
			assert.Nil(t, mask.Parent())
		}
	})
}

func TestErrorsLeavePartialState(t *testing.T) {
	// A failed capture does not roll back earlier captures; callers needing
	// atomicity start from a fresh load.
	fixture := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" xmlns:svg="http://www.w3.org/2000/svg">` +
		`<g id="boardContainer"><defs id="d"><mask id="hole-mask"><rect id="hr"/></mask></defs><rect id="r"/></g></svg>`
	sess, err := Load(context.Background(), writeFixture(t, fixture), Options{})
	require.NoError(t, err)

	err = sess.CaptureMasks()
	var nf *svgdom.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "pads-mask-silkscreen", nf.ID)
	assert.Equal(t, []string{"hole-mask"}, sess.MaskNames())
}
