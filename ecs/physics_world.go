package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/common"
	"github.com/milk9111/rampbox/traversal"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
)

const (
	defaultIterations    = 20
	defaultFriction      = 0.8
	defaultCollisionSlop = 0.005
)

// PhysicsConfig configures the Chipmunk space. The world is in meters, so
// the slop is far below Chipmunk's pixel-scale default.
type PhysicsConfig struct {
	Gravity       cp.Vector
	Iterations    int
	CollisionSlop float64
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:       cp.Vector{X: 0, Y: -common.Gravity},
		Iterations:    defaultIterations,
		CollisionSlop: defaultCollisionSlop,
	}
}

// PhysicsWorld owns the Chipmunk space and every body added through it.
type PhysicsWorld struct {
	space *cp.Space

	bodies    []*cp.Body
	shapes    []*cp.Shape
	nextGroup uint
}

// NewPhysicsWorld creates an empty space.
func NewPhysicsWorld(cfg PhysicsConfig) *PhysicsWorld {
	if cfg.Iterations <= 0 {
		cfg.Iterations = defaultIterations
	}
	if cfg.CollisionSlop <= 0 {
		cfg.CollisionSlop = defaultCollisionSlop
	}
	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cfg.Gravity)
	space.SetCollisionSlop(cfg.CollisionSlop)
	return &PhysicsWorld{space: space}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) Gravity() cp.Vector {
	if pw == nil || pw.space == nil {
		return cp.Vector{}
	}
	return pw.space.Gravity()
}

func (pw *PhysicsWorld) SetGravity(g cp.Vector) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.SetGravity(g)
}

// AddStaticBody creates a static body anchored at pos. Shapes added to it
// use coordinates local to pos.
func (pw *PhysicsWorld) AddStaticBody(pos cp.Vector) *cp.Body {
	if pw == nil || pw.space == nil {
		return nil
	}
	body := cp.NewStaticBody()
	body.SetPosition(pos)
	pw.space.AddBody(body)
	pw.bodies = append(pw.bodies, body)
	return body
}

// AddStaticBox attaches a centered box to a static body.
func (pw *PhysicsWorld) AddStaticBox(body *cp.Body, width, height, friction float64) *cp.Shape {
	if pw == nil || pw.space == nil || body == nil {
		return nil
	}
	shape := cp.NewBox(body, width, height, 0)
	return pw.addStaticShape(shape, friction)
}

// AddStaticPolygon attaches a convex polygon to a static body. Vertices may
// come in either winding.
func (pw *PhysicsWorld) AddStaticPolygon(body *cp.Body, verts []cp.Vector, friction float64) *cp.Shape {
	if pw == nil || pw.space == nil || body == nil || len(verts) < 3 {
		return nil
	}
	ccw := CounterClockwise(verts)
	shape := cp.NewPolyShapeRaw(body, len(ccw), ccw, 0)
	return pw.addStaticShape(shape, friction)
}

func (pw *PhysicsWorld) addStaticShape(shape *cp.Shape, friction float64) *cp.Shape {
	if friction <= 0 {
		friction = defaultFriction
	}
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeSolid)
	pw.space.AddShape(shape)
	pw.shapes = append(pw.shapes, shape)
	return shape
}

// AddDynamicBox creates a box body centered at pos. Each dynamic box gets
// its own filter group so its probes skip its own shape.
func (pw *PhysicsWorld) AddDynamicBox(pos cp.Vector, width, height, mass, friction float64, fixedRotation bool) (*cp.Body, *cp.Shape) {
	if pw == nil || pw.space == nil || width <= 0 || height <= 0 {
		return nil, nil
	}
	if mass <= 0 {
		mass = 1
	}
	if friction <= 0 {
		friction = defaultFriction
	}

	moment := cp.MomentForBox(mass, width, height)
	if fixedRotation {
		moment = math.Inf(1)
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(pos)

	pw.nextGroup++
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeDynamic)
	shape.SetFilter(cp.NewShapeFilter(pw.nextGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.bodies = append(pw.bodies, body)
	pw.shapes = append(pw.shapes, shape)
	return body, shape
}

// RayCast returns the first shape hit on the segment start→end.
func (pw *PhysicsWorld) RayCast(start, end cp.Vector) traversal.RayHit {
	return pw.rayCast(start, end, cp.SHAPE_FILTER_ALL)
}

// Prober returns a ray caster that ignores shapes sharing the given
// shape's filter group.
func (pw *PhysicsWorld) Prober(self *cp.Shape) traversal.RayCaster {
	filter := cp.SHAPE_FILTER_ALL
	if self != nil {
		filter = cp.NewShapeFilter(self.Filter.Group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	}
	return &filteredProbe{world: pw, filter: filter}
}

type filteredProbe struct {
	world  *PhysicsWorld
	filter cp.ShapeFilter
}

func (p *filteredProbe) RayCast(start, end cp.Vector) traversal.RayHit {
	return p.world.rayCast(start, end, p.filter)
}

func (pw *PhysicsWorld) rayCast(start, end cp.Vector, filter cp.ShapeFilter) traversal.RayHit {
	if pw == nil || pw.space == nil {
		return traversal.RayHit{}
	}
	info := pw.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return traversal.RayHit{}
	}
	return traversal.RayHit{Normal: info.Normal, Point: info.Point, Hit: true}
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Close removes every shape and body and drops the space. It is safe to
// call more than once.
func (pw *PhysicsWorld) Close() {
	if pw == nil || pw.space == nil {
		return
	}
	for _, shape := range pw.shapes {
		pw.space.RemoveShape(shape)
	}
	for _, body := range pw.bodies {
		pw.space.RemoveBody(body)
	}
	pw.shapes = nil
	pw.bodies = nil
	pw.space = nil
}

func (pw *PhysicsWorld) Closed() bool {
	return pw == nil || pw.space == nil
}

// ShapeCount reports how many shapes this world added.
func (pw *PhysicsWorld) ShapeCount() int {
	if pw == nil {
		return 0
	}
	return len(pw.shapes)
}

// CounterClockwise returns verts in counter-clockwise order.
func CounterClockwise(verts []cp.Vector) []cp.Vector {
	out := append([]cp.Vector(nil), verts...)
	area := 0.0
	for i := range out {
		a := out[i]
		b := out[(i+1)%len(out)]
		area += a.Cross(b)
	}
	if area < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
