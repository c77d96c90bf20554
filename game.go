package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/entity"
	"github.com/milk9111/rampbox/ecs/render"
	"github.com/milk9111/rampbox/ecs/system"
	"github.com/milk9111/rampbox/prefabs"
	"go.uber.org/zap"
)

type Options struct {
	Strategy string
	Watch    bool
}

type Game struct {
	logger *zap.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	box       ecs.Entity
	style     render.DebugStyle
	watcher   *prefabs.Watcher

	width  int
	height int
	tps    int
	frames int
}

func NewGame(logger *zap.Logger, opts Options) (*Game, error) {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	levelSpec, err := prefabs.LoadLevelSpec()
	if err != nil {
		return nil, err
	}
	boxSpec, err := prefabs.LoadBoxSpec()
	if err != nil {
		return nil, err
	}
	if opts.Strategy != "" {
		boxSpec.Controller.Strategy = opts.Strategy
	}

	pw := ecs.NewPhysicsWorld(ecs.PhysicsConfig{
		Gravity:       cp.Vector{X: worldSpec.Gravity.X, Y: worldSpec.Gravity.Y},
		Iterations:    worldSpec.Iterations,
		CollisionSlop: worldSpec.CollisionSlop,
	})
	world := ecs.NewWorld()
	world.SetPhysicsWorld(pw)

	g := &Game{
		logger: logger,
		world:  world,
		style: render.DebugStyle{
			Ray:   worldSpec.Debug.RayColor.Color,
			Shape: worldSpec.Debug.ShapeColor.Color,
			Body:  worldSpec.Debug.BodyColor.Color,
		},
		width:  worldSpec.ViewWidth,
		height: worldSpec.ViewHeight,
		tps:    int(math.Round(worldSpec.StepHz)),
	}

	if _, err := entity.NewCamera(world, worldSpec); err != nil {
		g.Close()
		return nil, err
	}
	if _, err := entity.NewLevel(world, levelSpec); err != nil {
		g.Close()
		return nil, err
	}
	g.box, err = entity.NewBox(world, boxSpec)
	if err != nil {
		g.Close()
		return nil, err
	}

	dt := worldSpec.StepSeconds()
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(newDeviceInput()),
		system.NewGroundProbeSystem(),
		system.NewSlopeControllerSystem(dt),
		system.NewPhysicsSystem(dt),
	)

	if opts.Watch {
		dirs := []string{prefabs.Dir}
		if info, err := os.Stat(filepath.Join(prefabs.Dir, "scripts")); err == nil && info.IsDir() {
			dirs = append(dirs, filepath.Join(prefabs.Dir, "scripts"))
		}
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			logger.Warn("prefab watch disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}

	logger.Info("scene ready",
		zap.String("world", worldSpec.Name),
		zap.String("level", levelSpec.Name),
		zap.Int("grounds", len(levelSpec.Grounds)),
		zap.Int("shapes", pw.ShapeCount()),
		zap.String("strategy", boxSpec.Controller.Strategy),
		zap.Float64("step", dt),
	)
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.applyReloads()
	g.scheduler.Update(g.world)
	g.logEvents()

	if ce := g.logger.Check(zap.DebugLevel, "velocity"); ce != nil {
		if st, ok := system.PlayerStatus(g.world); ok {
			ce.Write(
				zap.Int("frame", g.frames),
				zap.Float64("vx", st.Velocity.X),
				zap.Float64("vy", st.Velocity.Y),
			)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	render.DrawPhysicsDebug(g.world, screen, g.style)
	render.DrawProbes(g.world, screen, g.style)
	render.DrawHUD(g.world, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close stops the prefab watcher and releases every physics body. It is
// safe to call more than once.
func (g *Game) Close() {
	if g == nil {
		return
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("close prefab watcher", zap.Error(err))
		}
		g.watcher = nil
	}
	if pw := g.world.PhysicsWorld(); !pw.Closed() {
		pw.Close()
		g.logger.Info("physics world released")
	}
}

func (g *Game) logEvents() {
	for _, evt := range g.world.Events().Drain() {
		ce, ok := evt.Data.(ecs.ControllerEvent)
		if !ok {
			continue
		}
		switch evt.Type {
		case ecs.EventStrategyChanged:
			g.logger.Info("strategy changed", zap.Stringer("entity", ce.Entity), zap.String("strategy", ce.Strategy))
		case ecs.EventStrategyFailed:
			g.logger.Warn("strategy failed", zap.Stringer("entity", ce.Entity), zap.String("strategy", ce.Strategy), zap.Error(ce.Err))
		case ecs.EventModeChanged:
			g.logger.Debug("mode changed", zap.Stringer("entity", ce.Entity), zap.String("mode", ce.Mode))
		}
	}
}

// applyReloads drains pending prefab edits without blocking the frame.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.reload(name); err != nil {
				g.logger.Warn("prefab reload failed, keeping previous values", zap.String("file", name), zap.Error(err))
				continue
			}
			g.logger.Info("prefab reloaded", zap.String("file", name))
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) error {
	if strings.EqualFold(filepath.Ext(name), ".tengo") {
		name = prefabs.BoxFile
	}
	switch name {
	case prefabs.BoxFile:
		spec, err := prefabs.LoadBoxSpec()
		if err != nil {
			return err
		}
		return entity.RetuneBox(g.world, g.box, spec)
	case prefabs.WorldFile:
		spec, err := prefabs.LoadWorldSpec()
		if err != nil {
			return err
		}
		g.world.PhysicsWorld().SetGravity(cp.Vector{X: spec.Gravity.X, Y: spec.Gravity.Y})
		g.style = render.DebugStyle{
			Ray:   spec.Debug.RayColor.Color,
			Shape: spec.Debug.ShapeColor.Color,
			Body:  spec.Debug.BodyColor.Color,
		}
		return nil
	case prefabs.LevelFile:
		if _, err := prefabs.LoadLevelSpec(); err != nil {
			return err
		}
		return fmt.Errorf("level geometry changes apply on restart")
	default:
		return nil
	}
}
