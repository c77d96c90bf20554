package entity

import (
	"fmt"

	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
	"github.com/milk9111/rampbox/prefabs"
)

func NewCamera(w *ecs.World, spec *prefabs.WorldSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		PixelsPerMeter: spec.PixelsPerMeter,
		ViewWidth:      float64(spec.ViewWidth),
		ViewHeight:     float64(spec.ViewHeight),
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
