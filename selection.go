package viewrig

import "github.com/go-gl/mathgl/mgl64"

// SingleObjectRadius is the focus radius used when exactly one object is
// selected, since a lone point has no spread of its own.
const SingleObjectRadius = 1.5

// Focuser is the part of the camera a Selection drives. *Rig implements it.
type Focuser interface {
	Focus(center mgl64.Vec3, radius float64)
	Reset()
}

// Selection tracks the selected scene objects and keeps the camera framed
// on them: every change focuses the camera on the new set, or resets it when
// the set becomes empty.
type Selection struct {
	camera  Focuser
	objects []*SceneObject
}

func NewSelection(camera Focuser) *Selection {
	return &Selection{camera: camera}
}

// Toggle flips obj in or out of the selection.
func (s *Selection) Toggle(obj *SceneObject) {
	if s.IsSelected(obj) {
		s.remove(obj)
	} else {
		s.add(obj)
	}
	s.refocus()
}

func (s *Selection) Select(obj *SceneObject) {
	if s.IsSelected(obj) {
		return
	}
	s.add(obj)
	s.refocus()
}

func (s *Selection) Deselect(obj *SceneObject) {
	if !s.IsSelected(obj) {
		return
	}
	s.remove(obj)
	s.refocus()
}

// SelectAll adds every object in objs and refocuses once.
func (s *Selection) SelectAll(objs []*SceneObject) {
	changed := false
	for _, obj := range objs {
		if !s.IsSelected(obj) {
			s.add(obj)
			changed = true
		}
	}
	if changed {
		s.refocus()
	}
}

func (s *Selection) Clear() {
	for _, obj := range s.objects {
		obj.SetSelected(false)
	}
	s.objects = s.objects[:0]
	s.refocus()
}

func (s *Selection) IsSelected(obj *SceneObject) bool {
	for _, o := range s.objects {
		if o == obj {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int {
	return len(s.objects)
}

// Selected returns a copy of the selected objects in selection order.
func (s *Selection) Selected() []*SceneObject {
	out := make([]*SceneObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// Apply calls fn on every selected object.
func (s *Selection) Apply(fn func(*SceneObject)) {
	for _, obj := range s.objects {
		fn(obj)
	}
}

// Center is the centroid of the selected objects, or the origin when
// nothing is selected.
func (s *Selection) Center() mgl64.Vec3 {
	if len(s.objects) == 0 {
		return mgl64.Vec3{}
	}
	var center mgl64.Vec3
	for _, obj := range s.objects {
		center = center.Add(obj.Position)
	}
	return center.Mul(1 / float64(len(s.objects)))
}

// BoundingRadius is the distance from Center to the farthest selected
// object. It is never below MinFocusRadius for a non-empty selection.
func (s *Selection) BoundingRadius() float64 {
	switch len(s.objects) {
	case 0:
		return 0
	case 1:
		return SingleObjectRadius
	}

	center := s.Center()
	maxDistance := 0.0
	for _, obj := range s.objects {
		if d := obj.Position.Sub(center).Len(); d > maxDistance {
			maxDistance = d
		}
	}
	if maxDistance < MinFocusRadius {
		return MinFocusRadius
	}
	return maxDistance
}

func (s *Selection) add(obj *SceneObject) {
	s.objects = append(s.objects, obj)
	obj.SetSelected(true)
}

func (s *Selection) remove(obj *SceneObject) {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	obj.SetSelected(false)
}

func (s *Selection) refocus() {
	if s.camera == nil {
		return
	}
	if len(s.objects) == 0 {
		s.camera.Reset()
		return
	}
	s.camera.Focus(s.Center(), s.BoundingRadius())
}
