package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/smasonuk/viewrig"
	"golang.org/x/image/font/basicfont"
)

const (
	panelWidth   = 220
	panelPadding = 8
	rowHeight    = 18
	// the eye column at the right edge of each row toggles visibility
	eyeWidth = 28

	searchRow    = 0
	selectAllRow = 1
	firstItemRow = 2
)

var (
	panelColor     = color.RGBA{R: 34, G: 37, B: 46, A: 235}
	searchColor    = color.RGBA{R: 50, G: 54, B: 66, A: 255}
	highlightColor = color.RGBA{R: 80, G: 70, B: 30, A: 255}
	labelColor     = color.RGBA{R: 225, G: 228, B: 235, A: 255}
	dimColor       = color.RGBA{R: 120, G: 124, B: 134, A: 255}

	labelFace = text.NewGoXFace(basicfont.Face7x13)
)

// objectPanel lists scene objects with a fuzzy search box. Clicking a row
// toggles its selection, clicking the eye column toggles visibility.
type objectPanel struct {
	scene     *viewrig.Scene
	selection *viewrig.Selection

	query   []rune
	editing bool
	rows    []*viewrig.SceneObject
}

func newObjectPanel(scene *viewrig.Scene, selection *viewrig.Selection) *objectPanel {
	p := &objectPanel{scene: scene, selection: selection}
	p.rows = scene.Search("")
	return p
}

// Contains reports whether the screen point lies over the panel.
func (p *objectPanel) Contains(x, y int) bool {
	return x >= 0 && x < panelWidth && y >= 0 && y < screenHeight
}

// Update handles typing and clicks. It returns true while the search box
// owns the keyboard.
func (p *objectPanel) Update() bool {
	typing := p.editing
	if p.editing {
		p.query = ebiten.AppendInputChars(p.query)
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(p.query) > 0 {
			p.query = p.query[:len(p.query)-1]
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.editing = false
		}
	}
	p.rows = p.scene.Search(string(p.query))

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return typing
	}
	x, y := ebiten.CursorPosition()
	if !p.Contains(x, y) {
		p.editing = false
		return typing
	}

	row, ok := panelRow(y)
	if !ok {
		return typing
	}
	switch {
	case row == searchRow:
		p.editing = true
	case row == selectAllRow:
		p.toggleAll()
	case row >= firstItemRow && row-firstItemRow < len(p.rows):
		obj := p.rows[row-firstItemRow]
		if x >= panelWidth-eyeWidth {
			obj.SetVisible(!obj.Visible)
		} else {
			p.selection.Toggle(obj)
		}
	}
	return typing
}

// panelRow maps a screen y to a panel row. The padding strip above the
// first row is not part of any row.
func panelRow(y int) (int, bool) {
	if y < panelPadding {
		return 0, false
	}
	return (y - panelPadding) / rowHeight, true
}

// toggleAll selects every listed row, or clears the selection when they
// are all selected already.
func (p *objectPanel) toggleAll() {
	if p.allSelected() {
		p.selection.Clear()
		return
	}
	p.selection.SelectAll(p.rows)
}

func (p *objectPanel) allSelected() bool {
	if len(p.rows) == 0 {
		return false
	}
	for _, obj := range p.rows {
		if !p.selection.IsSelected(obj) {
			return false
		}
	}
	return true
}

func (p *objectPanel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, panelWidth, screenHeight, panelColor, false)

	rowY := func(row int) int { return panelPadding + row*rowHeight }

	vector.DrawFilledRect(screen, panelPadding-2, float32(rowY(searchRow)), panelWidth-2*panelPadding+4, rowHeight-2, searchColor, false)
	query := string(p.query)
	if p.editing {
		query += "_"
	} else if query == "" {
		query = "search..."
	}
	drawLabel(screen, query, panelPadding, rowY(searchRow), labelColor)

	box := "[ ]"
	if p.allSelected() {
		box = "[x]"
	}
	drawLabel(screen, box+" Select all", panelPadding, rowY(selectAllRow), labelColor)

	for i, obj := range p.rows {
		y := rowY(firstItemRow + i)
		if y+rowHeight > screenHeight {
			break
		}
		if obj.Selected {
			vector.DrawFilledRect(screen, 0, float32(y), panelWidth, rowHeight, highlightColor, false)
		}
		vector.DrawFilledRect(screen, panelPadding, float32(y+4), 10, 10, obj.Color, false)
		drawLabel(screen, obj.Name, panelPadding+16, y, labelColor)

		eye, clr := "(o)", labelColor
		if !obj.Visible {
			eye, clr = "(-)", dimColor
		}
		drawLabel(screen, eye, panelWidth-eyeWidth, y, clr)
	}
}

func drawLabel(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y+2))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, labelFace, op)
}
