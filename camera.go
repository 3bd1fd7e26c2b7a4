package viewrig

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ViewMatrix returns the world-to-camera matrix for a pose.
func ViewMatrix(p Pose) mgl64.Mat4 {
	return mgl64.LookAtV(p.Position, p.Position.Add(p.Forward()), p.Up())
}

// Projector maps world points onto a screen of Width x Height pixels.
type Projector struct {
	FieldOfView float64 // vertical, degrees
	Near        float64
	Far         float64
	Width       int
	Height      int
}

func NewProjector(fieldOfView float64, width, height int) *Projector {
	return &Projector{
		FieldOfView: fieldOfView,
		Near:        0.1,
		Far:         1000,
		Width:       width,
		Height:      height,
	}
}

func (pr *Projector) ProjectionMatrix() mgl64.Mat4 {
	aspect := 1.0
	if pr.Height > 0 {
		aspect = float64(pr.Width) / float64(pr.Height)
	}
	return mgl64.Perspective(degreesToRadians(pr.FieldOfView), aspect, pr.Near, pr.Far)
}

// Project returns the screen position of p seen from pose, with y growing
// downwards, and its distance along the view axis. ok is false when p is
// behind the near plane.
func (pr *Projector) Project(pose Pose, p mgl64.Vec3) (x, y, depth float64, ok bool) {
	eye := ViewMatrix(pose).Mul4x1(p.Vec4(1))
	depth = -eye.Z()
	if depth < pr.Near {
		return 0, 0, depth, false
	}

	clip := pr.ProjectionMatrix().Mul4x1(eye)
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()

	x = (ndcX + 1) / 2 * float64(pr.Width)
	y = (1 - ndcY) / 2 * float64(pr.Height)
	return x, y, depth, true
}

// Pick returns the nearest visible object whose projected center lies within
// tolerance pixels of (x, y).
func (pr *Projector) Pick(pose Pose, objects []*SceneObject, x, y, tolerance float64) (*SceneObject, bool) {
	var best *SceneObject
	bestDepth := math.Inf(1)
	for _, obj := range objects {
		if !obj.Visible {
			continue
		}
		sx, sy, depth, ok := pr.Project(pose, obj.Position)
		if !ok {
			continue
		}
		if math.Hypot(sx-x, sy-y) > tolerance {
			continue
		}
		if depth < bestDepth {
			best, bestDepth = obj, depth
		}
	}
	return best, best != nil
}
