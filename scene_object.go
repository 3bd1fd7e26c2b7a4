package viewrig

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// SceneObject is an editable object in the scene. Its visual fields are
// plain state; the viewer reads them when drawing.
type SceneObject struct {
	ID       uuid.UUID
	Name     string
	Position mgl64.Vec3
	Size     float64
	Color    color.RGBA
	Visible  bool

	// Selected drives the selection outline.
	Selected bool
}

func NewSceneObject(name string, position mgl64.Vec3, size float64, clr color.RGBA) *SceneObject {
	return &SceneObject{
		ID:       uuid.New(),
		Name:     name,
		Position: position,
		Size:     size,
		Color:    clr,
		Visible:  true,
	}
}

// SetColor changes the color but keeps the current transparency.
func (o *SceneObject) SetColor(clr color.RGBA) {
	o.Color = color.RGBA{R: clr.R, G: clr.G, B: clr.B, A: o.Color.A}
}

// SetTransparency sets the alpha from a value in [0, 1].
func (o *SceneObject) SetTransparency(alpha float64) {
	o.Color.A = uint8(clamp(alpha, 0, 1)*255 + 0.5)
}

func (o *SceneObject) SetVisible(visible bool) {
	o.Visible = visible
}

func (o *SceneObject) SetSelected(selected bool) {
	o.Selected = selected
}
