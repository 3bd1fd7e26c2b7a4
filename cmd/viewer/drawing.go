package main

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/smasonuk/viewrig"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image

	lightDir = mgl64.Vec3{0.4, 0.8, 0.45}.Normalize()

	gridColor      = color.RGBA{R: 60, G: 64, B: 76, A: 255}
	outlineColor   = color.RGBA{R: 20, G: 20, B: 24, A: 255}
	selectedColor  = color.RGBA{R: 255, G: 210, B: 60, A: 255}
	focusMarkColor = color.RGBA{R: 90, G: 200, B: 255, A: 255}
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// corner order: bottom ring (-z, then +z) counter-clockwise from (-,-)
var cubeFaces = [6][4]int{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{1, 2, 6, 5},
	{0, 3, 7, 4},
}

type projectedFace struct {
	xs, ys [4]float32
	depth  float64
	light  float64
}

func cubeCorners(center mgl64.Vec3, half float64) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	signs := [8][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	for i, s := range signs {
		out[i] = center.Add(mgl64.Vec3{s[0] * half, s[1] * half, s[2] * half})
	}
	return out
}

// drawObject renders obj as a shaded cube. Objects that cross the near
// plane are skipped rather than clipped.
func drawObject(screen *ebiten.Image, pr *viewrig.Projector, pose viewrig.Pose, obj *viewrig.SceneObject) {
	corners := cubeCorners(obj.Position, obj.Size/2)

	var sx, sy [8]float32
	var depth [8]float64
	for i, c := range corners {
		x, y, d, ok := pr.Project(pose, c)
		if !ok {
			return
		}
		sx[i], sy[i], depth[i] = float32(x), float32(y), d
	}

	faces := make([]projectedFace, 0, len(cubeFaces))
	for _, idx := range cubeFaces {
		var faceCenter mgl64.Vec3
		for _, i := range idx {
			faceCenter = faceCenter.Add(corners[i])
		}
		faceCenter = faceCenter.Mul(0.25)
		normal := faceCenter.Sub(obj.Position).Normalize()

		// back face
		if normal.Dot(faceCenter.Sub(pose.Position)) >= 0 {
			continue
		}

		f := projectedFace{light: 0.45 + 0.55*max(0, normal.Dot(lightDir))}
		for k, i := range idx {
			f.xs[k], f.ys[k] = sx[i], sy[i]
			f.depth += depth[i] / 4
		}
		faces = append(faces, f)
	}

	sort.Slice(faces, func(i, j int) bool {
		return faces[i].depth > faces[j].depth
	})

	for _, f := range faces {
		fillConvexPolygon(screen, f.xs[:], f.ys[:], shade(obj.Color, f.light))
		if obj.Selected {
			drawPolygonOutline(screen, f.xs[:], f.ys[:], 2, selectedColor)
		} else {
			drawPolygonOutline(screen, f.xs[:], f.ys[:], 1, outlineColor)
		}
	}
}

func shade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}

// drawGrid draws the ground plane as a line grid of the given half extent.
func drawGrid(screen *ebiten.Image, pr *viewrig.Projector, pose viewrig.Pose, extent int) {
	e := float64(extent)
	for i := -extent; i <= extent; i++ {
		v := float64(i)
		drawLine3D(screen, pr, pose, mgl64.Vec3{v, 0, -e}, mgl64.Vec3{v, 0, e}, gridColor)
		drawLine3D(screen, pr, pose, mgl64.Vec3{-e, 0, v}, mgl64.Vec3{e, 0, v}, gridColor)
	}
}

// drawFocusMark draws a small cross at the rig's focus point.
func drawFocusMark(screen *ebiten.Image, pr *viewrig.Projector, pose viewrig.Pose, p mgl64.Vec3) {
	x, y, _, ok := pr.Project(pose, p)
	if !ok {
		return
	}
	fx, fy := float32(x), float32(y)
	vector.StrokeLine(screen, fx-6, fy, fx+6, fy, 1, focusMarkColor, false)
	vector.StrokeLine(screen, fx, fy-6, fx, fy+6, 1, focusMarkColor, false)
}

func drawLine3D(screen *ebiten.Image, pr *viewrig.Projector, pose viewrig.Pose, a, b mgl64.Vec3, clr color.Color) {
	ax, ay, _, okA := pr.Project(pose, a)
	bx, by, _, okB := pr.Project(pose, b)
	if !okA || !okB {
		return
	}
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, clr, false)
}

func fillConvexPolygon(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(xp)-2)*3)
	for i := 2; i < len(xp); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	vertices := make([]ebiten.Vertex, len(xp))
	cr, cg, cb, ca := vertexColor(clr)
	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(vertices, indices, whiteSub, op)
}

// drawPolygonOutline strokes the closed outline through the given points.
func drawPolygonOutline(screen *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	strokeOp := &vector.StrokeOptions{
		Width: strokeWidth,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr, cg, cb, ca := vertexColor(clr)
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func vertexColor(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}
