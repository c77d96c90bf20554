package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/prefabs"
	"github.com/milk9111/rampbox/traversal"
	"github.com/stretchr/testify/require"
)

func useDiskDir(t *testing.T, dir string) {
	t.Helper()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })
}

func TestCompileAndImpulse(t *testing.T) {
	src := []byte(`
ix = dir * move_impulse * 2.0
iy = mass + vy
`)
	st, err := Compile("double", src)
	require.NoError(t, err)
	require.Equal(t, "double", st.Name())

	tuning := traversal.DefaultTuning()
	got := st.Impulse(traversal.MoveContext{Dir: -1, Mass: 3, Velocity: cp.Vector{Y: 0.5}}, tuning)
	require.InDelta(t, -0.1, got.X, 1e-12)
	require.InDelta(t, 3.5, got.Y, 1e-12)
	require.NoError(t, st.Err())

	var _ traversal.Strategy = st
}

func TestCompileIntegerOutputs(t *testing.T) {
	st, err := Compile("ints", []byte("ix = 2\niy = -1\n"))
	require.NoError(t, err)
	require.Equal(t, cp.Vector{X: 2, Y: -1}, st.Impulse(traversal.MoveContext{Dir: 1}, traversal.DefaultTuning()))
}

func TestCompileRejectsBadScripts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: "ix = ("},
		{name: "redeclared_output", src: "ix := 1.0"},
		{name: "string_output", src: `ix = "left"`},
		{name: "runtime_error", src: `ix = 1.0 + "x"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.name, []byte(tc.src))
			require.Error(t, err)
		})
	}
}

func TestImpulseKeepsRuntimeError(t *testing.T) {
	// Only fails when moving left, which the compile-time dry run skips.
	src := []byte(`
if dir < 0.0 {
	ix = "nope"
} else {
	ix = move_impulse
}
`)
	st, err := Compile("lefty", src)
	require.NoError(t, err)

	got := st.Impulse(traversal.MoveContext{Dir: -1}, traversal.DefaultTuning())
	require.Equal(t, cp.Vector{}, got)
	require.Error(t, st.Err())

	got = st.Impulse(traversal.MoveContext{Dir: 1}, traversal.DefaultTuning())
	require.Equal(t, cp.Vector{X: 0.05}, got)
	require.NoError(t, st.Err())
}

func TestEmbeddedGlide(t *testing.T) {
	useDiskDir(t, t.TempDir())

	st, err := Load("glide.tengo")
	require.NoError(t, err)
	require.Equal(t, "glide", st.Name())

	tuning := traversal.DefaultTuning()
	ramp := cp.Vector{X: 0.70710678, Y: 0.70710678}

	slow := st.Impulse(traversal.MoveContext{Dir: 1, Normal: ramp, Mass: 1}, tuning)
	require.InDelta(t, 0.05*0.70710678, slow.X, 1e-6)
	require.InDelta(t, -0.05*0.70710678, slow.Y, 1e-6)

	// Already cruising down the ramp at move_speed.
	fast := st.Impulse(traversal.MoveContext{Dir: 1, Normal: ramp, Mass: 1, Velocity: cp.Vector{X: 1, Y: -1}}, tuning)
	require.Equal(t, cp.Vector{}, fast)

	air := st.Impulse(traversal.MoveContext{Dir: -1, Mass: 1}, tuning)
	require.Equal(t, cp.Vector{X: -0.05}, air)
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	useDiskDir(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "glide.tengo"), []byte("ix = 9.0\n"), 0o644))

	st, err := Load("prefabs/scripts/glide.tengo")
	require.NoError(t, err)
	require.Equal(t, cp.Vector{X: 9}, st.Impulse(traversal.MoveContext{Dir: 1}, traversal.DefaultTuning()))

	_, err = Load("missing.tengo")
	require.Error(t, err)
}

func TestChoicesAndSelect(t *testing.T) {
	useDiskDir(t, t.TempDir())

	choices, err := Choices([]string{"glide.tengo"})
	require.NoError(t, err)
	require.Len(t, choices, 4)
	require.Equal(t, "glide", choices[3].Name())

	s, err := Select(choices, "Glide")
	require.NoError(t, err)
	require.Equal(t, "glide", s.Name())

	s, err = Select(choices, "")
	require.NoError(t, err)
	require.Equal(t, traversal.StrategyTangent, s.Name())

	s, err = Select(nil, "AXIS")
	require.NoError(t, err)
	require.Equal(t, traversal.StrategyAxis, s.Name())

	_, err = Select(choices, "teleport")
	require.Error(t, err)

	_, err = Choices([]string{"missing.tengo"})
	require.Error(t, err)
}
