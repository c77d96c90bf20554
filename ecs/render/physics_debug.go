package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
	"github.com/milk9111/rampbox/ecs/system"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DebugStyle colors the debug overlay.
type DebugStyle struct {
	Ray   color.Color
	Shape color.Color
	Body  color.Color
}

// DrawPhysicsDebug outlines every shape in the world's space.
func DrawPhysicsDebug(w *ecs.World, screen *ebiten.Image, style DebugStyle) {
	if w == nil || screen == nil {
		return
	}
	space := w.PhysicsWorld().Space()
	if space == nil {
		return
	}
	cp.DrawSpace(space, newDrawer(w, screen, style))
}

// DrawProbes draws each ground probe ray and, on a hit, the surface normal
// at the probe's end.
func DrawProbes(w *ecs.World, screen *ebiten.Image, style DebugStyle) {
	if w == nil || screen == nil {
		return
	}
	d := newDrawer(w, screen, style)
	ray := toFColor(style.Ray)
	ecs.ForEach(w, component.GroundProbeComponent.Kind(), func(e ecs.Entity, probe *component.GroundProbe) {
		s := probe.Sample
		if s.Start == s.End {
			return
		}
		d.drawLine(s.Start, s.End, ray)
		if s.Hit {
			d.drawLine(s.End, s.End.Add(s.Normal.Mult(0.25)), ray)
		}
	})
}

// DrawHUD prints the player's controller state in the top left corner.
func DrawHUD(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	text := fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS())
	if st, ok := system.PlayerStatus(w); ok {
		text += fmt.Sprintf("\nVelocity: (%.2f, %.2f)\nNormal: (%.2f, %.2f)\nGround angle: %.1f\nOn slope: %v\nStrategy: %s (Tab)\nMode: %s",
			st.Velocity.X, st.Velocity.Y,
			st.Normal.X, st.Normal.Y,
			st.GroundAngle,
			st.OnSlope,
			st.Strategy,
			st.Mode)
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	ppm    float64
	viewH  float64
	style  DebugStyle
}

func newDrawer(w *ecs.World, screen *ebiten.Image, style DebugStyle) *physicsDebugDrawer {
	ppm, viewH := debugCameraTransform(w, screen)
	return &physicsDebugDrawer{screen: screen, ppm: ppm, viewH: viewH, style: style}
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, fill)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, fill)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
	if radius > 0 {
		d.drawCircle(a, radius, fill)
		d.drawCircle(b, radius, fill)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], fill)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2 / d.ppm
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return toFColor(d.style.Shape)
}

// ShapeColor separates static level geometry from dynamic bodies.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Body() != nil && shape.Body().GetType() == cp.BODY_DYNAMIC {
		return toFColor(d.style.Body)
	}
	return toFColor(d.style.Shape)
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return toFColor(d.style.Ray)
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(c))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

// toScreen maps meters, y up, onto pixels, y down.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return v.X * d.ppm, d.viewH - v.Y*d.ppm
}

func toFColor(c color.Color) cp.FColor {
	if c == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return cp.FColor{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func debugCameraTransform(w *ecs.World, screen *ebiten.Image) (float64, float64) {
	ppm := 100.0
	viewH := float64(screen.Bounds().Dy())
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return ppm, viewH
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		if cam.PixelsPerMeter > 0 {
			ppm = cam.PixelsPerMeter
		}
		if cam.ViewHeight > 0 {
			viewH = cam.ViewHeight
		}
	}
	return ppm, viewH
}
