// Package world provides a Chipmunk-backed implementation of the ray-cast
// service a platypus body probes against. Surface groups map to shape filter
// categories and every surface gets an opaque id so bodies can track the
// surface they stand on across frames.
package world

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/britzl/platypus"
)

const maxGroups = 32

type surface struct {
	id    uint64
	group string
	body  *cp.Body
	shape *cp.Shape
}

// World owns a Chipmunk space used purely for segment queries; it is never
// stepped.
type World struct {
	space *cp.Space

	categories map[string]uint
	surfaces   map[uint64]*surface
	shapeIDs   map[*cp.Shape]uint64
	nextID     uint64
}

func New() *World {
	return &World{
		space:      cp.NewSpace(),
		categories: make(map[string]uint),
		surfaces:   make(map[uint64]*surface),
		shapeIDs:   make(map[*cp.Shape]uint64),
	}
}

func (w *World) category(group string) (uint, error) {
	if cat, ok := w.categories[group]; ok {
		return cat, nil
	}
	if len(w.categories) >= maxGroups {
		return 0, fmt.Errorf("world: too many surface groups (max %d)", maxGroups)
	}
	cat := uint(1) << uint(len(w.categories))
	w.categories[group] = cat
	return cat, nil
}

func (w *World) add(group string, body *cp.Body, shape *cp.Shape) (uint64, error) {
	cat, err := w.category(group)
	if err != nil {
		return 0, err
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, cat, cp.ALL_CATEGORIES))
	if body != w.space.StaticBody {
		w.space.AddBody(body)
	}
	w.space.AddShape(shape)

	w.nextID++
	s := &surface{id: w.nextID, group: group, body: body, shape: shape}
	w.surfaces[s.id] = s
	w.shapeIDs[shape] = s.id
	return s.id, nil
}

// AddBox registers a static axis-aligned box surface and returns its id.
func (w *World) AddBox(group string, bb cp.BB) (uint64, error) {
	return w.add(group, w.space.StaticBody, cp.NewBox2(w.space.StaticBody, bb, 0))
}

// AddSegment registers a static segment surface and returns its id.
func (w *World) AddSegment(group string, a, b cp.Vector, radius float64) (uint64, error) {
	return w.add(group, w.space.StaticBody, cp.NewSegment(w.space.StaticBody, a, b, radius))
}

// AddPlatform registers a movable box surface of the given size centered at
// pos. Move it with SetPlatformPosition.
func (w *World) AddPlatform(group string, pos cp.Vector, width, height float64) (uint64, error) {
	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	return w.add(group, body, cp.NewBox(body, width, height, 0))
}

// SetPlatformPosition moves a platform surface. The shape is pulled out of
// the spatial index and reinserted so following queries see the new position;
// the space is never stepped, which is what would otherwise refresh its
// cached bounds.
func (w *World) SetPlatformPosition(id uint64, pos cp.Vector) {
	s, ok := w.surfaces[id]
	if !ok || s.body == w.space.StaticBody {
		return
	}
	s.body.SetPosition(pos)
	w.space.RemoveShape(s.shape)
	w.space.AddShape(s.shape)
}

// PlatformPosition returns the center of a platform surface.
func (w *World) PlatformPosition(id uint64) (cp.Vector, bool) {
	s, ok := w.surfaces[id]
	if !ok {
		return cp.Vector{}, false
	}
	return s.body.Position(), true
}

// Remove deletes a surface. Bodies standing on it detect the removal through
// Exists on their next update.
func (w *World) Remove(id uint64) {
	s, ok := w.surfaces[id]
	if !ok {
		return
	}
	w.space.RemoveShape(s.shape)
	if s.body != w.space.StaticBody {
		w.space.RemoveBody(s.body)
	}
	delete(w.shapeIDs, s.shape)
	delete(w.surfaces, id)
}

// Exists reports whether a surface id still resolves to a live surface.
func (w *World) Exists(id uint64) bool {
	_, ok := w.surfaces[id]
	return ok
}

// Group returns the surface group of an id.
func (w *World) Group(id uint64) (string, bool) {
	s, ok := w.surfaces[id]
	if !ok {
		return "", false
	}
	return s.group, true
}

// Raycast returns the nearest surface hit on the segment from->to among the
// named groups.
func (w *World) Raycast(from, to cp.Vector, groups []string) (platypus.Hit, bool) {
	var mask uint
	for _, g := range groups {
		if cat, ok := w.categories[g]; ok {
			mask |= cat
		}
	}
	if mask == 0 {
		return platypus.Hit{}, false
	}

	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	info := w.space.SegmentQueryFirst(from, to, 0, filter)
	if info.Shape == nil {
		return platypus.Hit{}, false
	}
	id := w.shapeIDs[info.Shape]
	s := w.surfaces[id]
	if s == nil {
		return platypus.Hit{}, false
	}
	return platypus.Hit{
		Surface:  id,
		Group:    s.group,
		Point:    info.Point,
		Normal:   info.Normal,
		Fraction: info.Alpha,
	}, true
}
