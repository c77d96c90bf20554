package system

import (
	"github.com/milk9111/rampbox/ecs"
	"github.com/milk9111/rampbox/ecs/component"
)

// InputSource polls one frame of device state.
type InputSource interface {
	Poll() component.Input
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var frame component.Input
	if i.source != nil {
		frame = i.source.Poll()
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = frame
	})
}
