package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/rampbox/traversal"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// useDiskDir points disk overrides at dir for the duration of a test.
func useDiskDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestLoadEmbeddedSpecs(t *testing.T) {
	useDiskDir(t, t.TempDir())

	world, err := LoadWorldSpec()
	require.NoError(t, err)
	require.Equal(t, -9.8, world.Gravity.Y)
	require.InDelta(t, 1.0/60.0, world.StepSeconds(), 1e-12)
	require.Equal(t, 100.0, world.PixelsPerMeter)
	require.Equal(t, color.Color(colornames.Red), world.Debug.RayColor.Color)
	require.Equal(t, color.Color(color.NRGBA{R: 0x32, G: 0xcd, B: 0x32, A: 0xe6}), world.Debug.ShapeColor.Color)

	level, err := LoadLevelSpec()
	require.NoError(t, err)
	require.Len(t, level.Grounds, 1)
	require.Len(t, level.Grounds[0].Ramps, 2)
	require.Equal(t, -2.5, level.Grounds[0].Ramps[0].XOffset)

	box, err := LoadBoxSpec()
	require.NoError(t, err)
	require.Equal(t, traversal.StrategyTangent, box.Controller.Strategy)
	require.Equal(t, traversal.CornerLeft, box.Controller.Corner())
	require.Equal(t, 0.2, box.Collider.Width)
	require.Equal(t, 5.0, box.Controller.Tuning().JumpSpeed)
	require.Equal(t, []string{"glide.tengo"}, box.Controller.Scripts)
}

func TestDiskOverrideShadowsEmbedded(t *testing.T) {
	dir := t.TempDir()
	useDiskDir(t, dir)

	override := "name: heavy\nmass: 4\ncontroller:\n  strategy: axis\n  probe_corner: right\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, BoxFile), []byte(override), 0o644))

	box, err := LoadBoxSpec()
	require.NoError(t, err)
	require.Equal(t, "heavy", box.Name)
	require.Equal(t, 4.0, box.Mass)
	require.Equal(t, traversal.StrategyAxis, box.Controller.Strategy)
	require.Equal(t, traversal.CornerRight, box.Controller.Corner())

	defaults := traversal.DefaultTuning()
	require.Equal(t, defaults.MoveImpulse, box.Controller.MoveImpulse)
	require.Equal(t, defaults.ProbeReach, box.Controller.ProbeReach)
	require.Equal(t, 0.2, box.Collider.Height)

	_, ok := ModTime(BoxFile)
	require.True(t, ok)
	_, ok = ModTime(WorldFile)
	require.False(t, ok)
}

func TestScriptedStrategyValidation(t *testing.T) {
	dir := t.TempDir()
	useDiskDir(t, dir)

	ok := "controller:\n  strategy: glide\n  scripts: [scripts/glide.tengo]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, BoxFile), []byte(ok), 0o644))
	box, err := LoadBoxSpec()
	require.NoError(t, err)
	require.Equal(t, "glide", box.Controller.Strategy)

	missing := "controller:\n  strategy: glide\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, BoxFile), []byte(missing), 0o644))
	_, err = LoadBoxSpec()
	require.Error(t, err)

	require.Equal(t, "glide", ScriptName("prefabs/scripts/glide.tengo"))
}

func TestLoadScript(t *testing.T) {
	useDiskDir(t, t.TempDir())

	src, err := LoadScript("glide.tengo")
	require.NoError(t, err)
	require.Contains(t, string(src), "move_speed")

	_, err = LoadScript("missing.tengo")
	require.Error(t, err)
}

func TestSpecValidation(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		load    func() error
	}{
		{
			name:    "unknown_strategy",
			file:    BoxFile,
			content: "controller:\n  strategy: teleport\n",
			load:    func() error { _, err := LoadBoxSpec(); return err },
		},
		{
			name:    "bad_corner",
			file:    BoxFile,
			content: "controller:\n  probe_corner: up\n",
			load:    func() error { _, err := LoadBoxSpec(); return err },
		},
		{
			name:    "empty_level",
			file:    LevelFile,
			content: "name: void\n",
			load:    func() error { _, err := LoadLevelSpec(); return err },
		},
		{
			name:    "vertical_ramp",
			file:    LevelFile,
			content: "grounds:\n  - ramps:\n      - { x_offset: 1, angle: 90, length: 1 }\n",
			load:    func() error { _, err := LoadLevelSpec(); return err },
		},
		{
			name:    "degenerate_polygon",
			file:    LevelFile,
			content: "grounds:\n  - polygons:\n      - [{ x: 0, y: 0 }, { x: 1, y: 0 }]\n",
			load:    func() error { _, err := LoadLevelSpec(); return err },
		},
		{
			name:    "malformed_yaml",
			file:    WorldFile,
			content: "gravity: [1, 2\n",
			load:    func() error { _, err := LoadWorldSpec(); return err },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			useDiskDir(t, dir)
			require.NoError(t, os.WriteFile(filepath.Join(dir, tc.file), []byte(tc.content), 0o644))
			require.Error(t, tc.load())
		})
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: "red", want: colornames.Red},
		{in: "Gold", want: colornames.Gold},
		{in: "'#102030'", want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{in: "'#10203040'", want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: "'#12'", wantErr: true},
		{in: "[1, 2]", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, c.Color)
		})
	}
}
