package main

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/viewrig"
)

const (
	mouseSensitivity = 0.1
	wheelScale       = 0.1
	// clickSlop is how far the pointer may travel between press and
	// release for the gesture to still count as a click.
	clickSlop = 4
)

// mouseTracker turns ebiten's pointer state into rig input. Right drag
// rotates, middle drag pans, left drag orbits and the wheel zooms.
type mouseTracker struct {
	lastX, lastY int
	press        image.Point
	dragged      bool
	clicked      bool
}

func (m *mouseTracker) sample(overUI bool) viewrig.Input {
	x, y := ebiten.CursorPosition()
	dx := float64(x-m.lastX) * mouseSensitivity
	dy := float64(y-m.lastY) * mouseSensitivity
	m.lastX, m.lastY = x, y
	m.trackClick(x, y)

	in := viewrig.Input{
		PointerOverUI: overUI,
		DeltaTime:     1 / float64(ebiten.TPS()),
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		in.Rotate = mgl64.Vec2{-dx, -dy}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		in.Pan = mgl64.Vec2{dx, -dy}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && m.dragged {
		in.Orbit = mgl64.Vec2{-dx, dy}
	}
	_, wheel := ebiten.Wheel()
	in.Scroll = wheel * wheelScale
	return in
}

func (m *mouseTracker) trackClick(x, y int) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.press = image.Pt(x, y)
		m.dragged = false
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && manhattan(image.Pt(x, y), m.press) > clickSlop {
		m.dragged = true
	}
	m.clicked = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && !m.dragged
}

// click reports a left click released this tick.
func (m *mouseTracker) click() (image.Point, bool) {
	return image.Pt(m.lastX, m.lastY), m.clicked
}

func manhattan(a, b image.Point) int {
	d := a.Sub(b)
	return abs(d.X) + abs(d.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
