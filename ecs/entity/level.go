package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/common"
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
	"github.com/milk9111/rampbox/prefabs"
)

// NewLevel creates one static entity per ground in the spec and attaches
// its slab, ramps and polygons to a shared static body.
func NewLevel(w *ecs.World, spec *prefabs.LevelSpec) ([]ecs.Entity, error) {
	if spec == nil {
		return nil, fmt.Errorf("level: nil spec")
	}
	pw := w.PhysicsWorld()
	if pw == nil || pw.Closed() {
		return nil, fmt.Errorf("level: %q: no physics world", spec.Name)
	}

	grounds := make([]ecs.Entity, 0, len(spec.Grounds))
	for i, g := range spec.Grounds {
		e, err := newGround(w, pw, g)
		if err != nil {
			return nil, fmt.Errorf("level: %q ground %d: %w", spec.Name, i, err)
		}
		grounds = append(grounds, e)
	}
	return grounds, nil
}

func newGround(w *ecs.World, pw *ecs.PhysicsWorld, g prefabs.GroundSpec) (ecs.Entity, error) {
	pos := cp.Vector{X: g.Position.X, Y: g.Position.Y}
	body := pw.AddStaticBody(pos)

	var shapes []*cp.Shape
	var width, height float64
	if g.Slab != nil {
		shapes = append(shapes, pw.AddStaticBox(body, g.Slab.Width, g.Slab.Height, g.Friction))
		width, height = g.Slab.Width, g.Slab.Height
	}
	for _, r := range g.Ramps {
		shapes = append(shapes, pw.AddStaticPolygon(body, RampVertices(r), g.Friction))
	}
	for _, poly := range g.Polygons {
		verts := make([]cp.Vector, 0, len(poly))
		for _, v := range poly {
			verts = append(verts, cp.Vector{X: v.X, Y: v.Y})
		}
		shapes = append(shapes, pw.AddStaticPolygon(body, verts, g.Friction))
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.StaticTagComponent.Kind(), &component.StaticTag{}); err != nil {
		return 0, fmt.Errorf("add static tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:     body,
		Shapes:   shapes,
		Width:    width,
		Height:   height,
		Friction: g.Friction,
		Static:   true,
	}); err != nil {
		return 0, fmt.Errorf("add physics body: %w", err)
	}
	return e, nil
}

// RampVertices returns a right triangle in ground-local coordinates. The
// vertical leg sits at XOffset and the slope falls toward the slab.
func RampVertices(r prefabs.RampSpec) []cp.Vector {
	height := r.Length * math.Tan(common.DegToRad(r.Angle))
	if r.XOffset < 0 {
		return []cp.Vector{
			{X: r.XOffset, Y: r.Base},
			{X: r.XOffset, Y: r.Base + height},
			{X: r.XOffset + r.Length, Y: r.Base},
		}
	}
	return []cp.Vector{
		{X: r.XOffset, Y: r.Base},
		{X: r.XOffset - r.Length, Y: r.Base},
		{X: r.XOffset, Y: r.Base + height},
	}
}
