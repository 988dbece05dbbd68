package scene

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Intersection is everything shading needs to know about one ray-object hit
type Intersection struct {
	T          float64
	Point      core.Vec3
	Normal     core.Vec3 // Unit normal, flipped to face the incoming ray
	FrontFace  bool      // Ray arrived on the outward-normal side
	Eye        core.Vec3 // Unit vector back along the ray
	Reflect    core.Vec3
	OverPoint  core.Vec3 // Origin for shadow and reflection rays
	UnderPoint core.Vec3 // Origin for refraction rays
	Colour     core.Vec3 // Surface colour resolved from the material or pattern
	ObjectID   int
	Material   *material.Material

	// Set by ComputeRefractiveIndices
	ExitIndex  float64
	EnterIndex float64
}

// Schlick returns the fraction of light reflected at this boundary
func (h *Intersection) Schlick() float64 {
	return material.Schlick(h.Eye, h.Normal, h.ExitIndex, h.EnterIndex)
}

// SortIntersections orders hits by ascending t, breaking ties by object ID
func SortIntersections(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].T != hits[j].T {
			return hits[i].T < hits[j].T
		}
		return hits[i].ObjectID < hits[j].ObjectID
	})
}

// ComputeRefractiveIndices stamps exit and enter refractive indices onto hits,
// which must be every intersection of a single ray sorted by t.
//
// The ray starts outside everything. Walking the hits in order, each object is
// pushed onto a stack of containers when first met and removed when met again.
// The index being left is the top of the stack before the hit and the index
// being entered is the top after it; an empty stack is vacuum (1.0).
func ComputeRefractiveIndices(hits []Intersection) {
	containers := make([]*Intersection, 0, 4)

	for i := range hits {
		hit := &hits[i]
		hit.ExitIndex = topIndex(containers)

		if at := containerIndex(containers, hit.ObjectID); at >= 0 {
			containers = append(containers[:at], containers[at+1:]...)
		} else {
			containers = append(containers, hit)
		}

		hit.EnterIndex = topIndex(containers)
	}
}

func topIndex(containers []*Intersection) float64 {
	if len(containers) == 0 {
		return 1
	}
	return containers[len(containers)-1].Material.RefractiveIndex
}

func containerIndex(containers []*Intersection, objectID int) int {
	for i, c := range containers {
		if c.ObjectID == objectID {
			return i
		}
	}
	return -1
}

// FirstVisible returns the first hit with t >= 0, or nil when every hit is behind the ray.
// hits must be sorted.
func FirstVisible(hits []Intersection) *Intersection {
	for i := range hits {
		if hits[i].T >= 0 {
			return &hits[i]
		}
	}
	return nil
}
