package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/rampbox/traversal"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	WorldFile = "world.yaml"
	LevelFile = "level.yaml"
	BoxFile   = "box.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type WorldSpec struct {
	Name           string    `yaml:"name"`
	Gravity        *Vec2Spec `yaml:"gravity"`
	Iterations     int       `yaml:"iterations"`
	CollisionSlop  float64   `yaml:"collision_slop"`
	StepHz         float64   `yaml:"step_hz"`
	PixelsPerMeter float64   `yaml:"pixels_per_meter"`
	ViewWidth      int       `yaml:"view_width"`
	ViewHeight     int       `yaml:"view_height"`
	Debug          DebugSpec `yaml:"debug"`
}

type DebugSpec struct {
	RayColor   *YAMLColor `yaml:"ray_color"`
	ShapeColor *YAMLColor `yaml:"shape_color"`
	BodyColor  *YAMLColor `yaml:"body_color"`
}

// StepSeconds is the fixed physics step.
func (s *WorldSpec) StepSeconds() float64 {
	return 1 / s.StepHz
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec](WorldFile)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", WorldFile, err)
	}
	return &spec, nil
}

func (s *WorldSpec) applyDefaults() {
	if s.Gravity == nil {
		s.Gravity = &Vec2Spec{X: 0, Y: -9.8}
	}
	if s.Iterations <= 0 {
		s.Iterations = 20
	}
	if s.CollisionSlop <= 0 {
		s.CollisionSlop = 0.005
	}
	if s.StepHz <= 0 {
		s.StepHz = 60
	}
	if s.PixelsPerMeter <= 0 {
		s.PixelsPerMeter = 100
	}
	if s.ViewWidth <= 0 {
		s.ViewWidth = 640
	}
	if s.ViewHeight <= 0 {
		s.ViewHeight = 480
	}
	if s.Debug.RayColor == nil {
		s.Debug.RayColor = &YAMLColor{Color: colornames.Red}
	}
	if s.Debug.ShapeColor == nil {
		s.Debug.ShapeColor = &YAMLColor{Color: colornames.Limegreen}
	}
	if s.Debug.BodyColor == nil {
		s.Debug.BodyColor = &YAMLColor{Color: colornames.Gold}
	}
}

func (s *WorldSpec) validate() error {
	if s.StepHz < 1 {
		return fmt.Errorf("step_hz must be at least 1, got %v", s.StepHz)
	}
	return nil
}

type LevelSpec struct {
	Name    string       `yaml:"name"`
	Grounds []GroundSpec `yaml:"grounds"`
}

// GroundSpec is one static body: a flat slab plus any ramps and polygons
// attached to it. Ramp and polygon coordinates are local to Position.
type GroundSpec struct {
	Position Vec2Spec     `yaml:"position"`
	Friction float64      `yaml:"friction"`
	Slab     *SlabSpec    `yaml:"slab"`
	Ramps    []RampSpec   `yaml:"ramps"`
	Polygons [][]Vec2Spec `yaml:"polygons"`
}

type SlabSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RampSpec is a right triangle standing on Base. A negative XOffset puts
// the tall side on the left, a positive one on the right.
type RampSpec struct {
	XOffset float64 `yaml:"x_offset"`
	Angle   float64 `yaml:"angle"`
	Length  float64 `yaml:"length"`
	Base    float64 `yaml:"base"`
}

func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](LevelFile)
	if err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", LevelFile, err)
	}
	return &spec, nil
}

func (s *LevelSpec) validate() error {
	if len(s.Grounds) == 0 {
		return fmt.Errorf("level %q has no grounds", s.Name)
	}
	for i, g := range s.Grounds {
		if g.Slab != nil && (g.Slab.Width <= 0 || g.Slab.Height <= 0) {
			return fmt.Errorf("ground %d: slab needs a positive size", i)
		}
		for j, r := range g.Ramps {
			if r.Length <= 0 {
				return fmt.Errorf("ground %d ramp %d: length must be positive", i, j)
			}
			if r.Angle <= 0 || r.Angle >= 90 {
				return fmt.Errorf("ground %d ramp %d: angle must be in (0, 90), got %v", i, j, r.Angle)
			}
		}
		for j, p := range g.Polygons {
			if len(p) < 3 {
				return fmt.Errorf("ground %d polygon %d: need at least 3 vertices", i, j)
			}
		}
	}
	return nil
}

type BoxSpec struct {
	Name          string         `yaml:"name"`
	Transform     TransformSpec  `yaml:"transform"`
	Collider      ColliderSpec   `yaml:"collider"`
	Mass          float64        `yaml:"mass"`
	Friction      float64        `yaml:"friction"`
	FixedRotation bool           `yaml:"fixed_rotation"`
	Controller    ControllerSpec `yaml:"controller"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ControllerSpec struct {
	Strategy       string  `yaml:"strategy"`
	MoveImpulse    float64 `yaml:"move_impulse"`
	MoveSpeed      float64 `yaml:"move_speed"`
	JumpSpeed      float64 `yaml:"jump_speed"`
	SlopeThreshold float64 `yaml:"slope_threshold"`
	ProbeReach     float64 `yaml:"probe_reach"`
	ProbeCorner    string  `yaml:"probe_corner"`

	// Scripts are extra tengo strategies, selectable by file base name.
	Scripts []string `yaml:"scripts"`
}

// Tuning converts the spec into controller magnitudes.
func (c ControllerSpec) Tuning() traversal.Tuning {
	return traversal.Tuning{
		MoveImpulse:    c.MoveImpulse,
		MoveSpeed:      c.MoveSpeed,
		JumpSpeed:      c.JumpSpeed,
		SlopeThreshold: c.SlopeThreshold,
		ProbeReach:     c.ProbeReach,
	}
}

func (c ControllerSpec) Corner() traversal.Corner {
	if strings.EqualFold(c.ProbeCorner, "right") {
		return traversal.CornerRight
	}
	return traversal.CornerLeft
}

func LoadBoxSpec() (*BoxSpec, error) {
	spec, err := LoadSpec[BoxSpec](BoxFile)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", BoxFile, err)
	}
	return &spec, nil
}

func (s *BoxSpec) applyDefaults() {
	if s.Collider.Width <= 0 {
		s.Collider.Width = 0.2
	}
	if s.Collider.Height <= 0 {
		s.Collider.Height = 0.2
	}
	if s.Mass <= 0 {
		s.Mass = 1
	}
	d := traversal.DefaultTuning()
	c := &s.Controller
	if c.Strategy == "" {
		c.Strategy = traversal.StrategyTangent
	}
	if c.MoveImpulse <= 0 {
		c.MoveImpulse = d.MoveImpulse
	}
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = d.MoveSpeed
	}
	if c.JumpSpeed <= 0 {
		c.JumpSpeed = d.JumpSpeed
	}
	if c.SlopeThreshold <= 0 {
		c.SlopeThreshold = d.SlopeThreshold
	}
	if c.ProbeReach <= 0 {
		c.ProbeReach = d.ProbeReach
	}
}

func (s *BoxSpec) validate() error {
	if _, err := traversal.StrategyByName(s.Controller.Strategy); err != nil && !s.Controller.hasScript(s.Controller.Strategy) {
		return err
	}
	switch strings.ToLower(s.Controller.ProbeCorner) {
	case "", "left", "right":
	default:
		return fmt.Errorf("probe_corner must be left or right, got %q", s.Controller.ProbeCorner)
	}
	return nil
}

func (c ControllerSpec) hasScript(name string) bool {
	for _, path := range c.Scripts {
		if strings.EqualFold(ScriptName(path), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa", or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
