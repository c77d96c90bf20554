package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// StaticTag marks level geometry that never moves.
type StaticTag struct{}

var StaticTagComponent = NewComponent[StaticTag]()
