package viewrig

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Scene holds the objects the editor works on, in insertion order.
type Scene struct {
	objects []*SceneObject
	byID    map[uuid.UUID]*SceneObject
}

func NewScene() *Scene {
	return &Scene{
		byID: make(map[uuid.UUID]*SceneObject),
	}
}

func (s *Scene) Add(obj *SceneObject) {
	if _, ok := s.byID[obj.ID]; ok {
		return
	}
	s.objects = append(s.objects, obj)
	s.byID[obj.ID] = obj
}

func (s *Scene) Objects() []*SceneObject {
	return s.objects
}

func (s *Scene) ByID(id uuid.UUID) (*SceneObject, bool) {
	obj, ok := s.byID[id]
	return obj, ok
}

// Search returns the objects whose names fuzzily match query, best match
// first. An empty query returns every object.
func (s *Scene) Search(query string) []*SceneObject {
	if query == "" {
		return s.objects
	}

	names := make([]string, len(s.objects))
	for i, obj := range s.objects {
		names[i] = obj.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	found := make([]*SceneObject, 0, len(ranks))
	for _, rank := range ranks {
		found = append(found, s.objects[rank.OriginalIndex])
	}
	return found
}

// SortedByDistance returns the objects ordered farthest first from the given
// point, which is the order a painter's algorithm draws them in.
func (s *Scene) SortedByDistance(from mgl64.Vec3) []*SceneObject {
	sorted := make([]*SceneObject, len(s.objects))
	copy(sorted, s.objects)
	sort.SliceStable(sorted, func(i, j int) bool {
		distanceI := sorted[i].Position.Sub(from).Len()
		distanceJ := sorted[j].Position.Sub(from).Len()
		return distanceI > distanceJ
	})
	return sorted
}
