package viewer

import (
	"github.com/Faultbox/flyview/internal/config"
	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/control"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/input"
	"github.com/Faultbox/flyview/internal/engine/transform"
	"github.com/Faultbox/flyview/internal/engine/ui"
	"github.com/Faultbox/flyview/internal/viewer/prefab"
	"github.com/Faultbox/flyview/internal/viewer/systems"
)

// Systems holds what BuildDispatcher needs besides the world.
type Systems struct {
	Source   input.EventSource
	Bindings *input.Bindings
	Controls config.ControlsConfig
	Upload   prefab.UploadFunc // nil uploads through OpenGL
	Measure  ui.MeasureFunc    // nil uses the ui2d font metrics
}

// BuildDispatcher wires the viewer's systems:
//
//	prefab           []
//	input_system     []
//	fly_movement     [input_system]
//	free_rotation    [fly_movement]
//	transform_system [fly_movement, free_rotation]
//	auto_fov         [prefab]
//	show_fov         [auto_fov]
//	ui_system        []
//
// auto_fov runs in the frame a camera is spawned so its first frame already
// has the right projection.
func BuildDispatcher(w *ecs.World, s Systems) (*ecs.Dispatcher, error) {
	c := s.Controls
	transformDeps := []string{control.FlyMovementSystemName}
	if c.MouseLook {
		transformDeps = append(transformDeps, control.FreeRotationSystemName)
	}

	return ecs.NewDispatcherBuilder().
		With(prefab.NewSystem(s.Upload), prefab.SystemName).
		WithBundle(&input.Bundle{World: w, Source: s.Source, Bindings: s.Bindings}).
		WithBundle(&control.FlyControlBundle{
			Speed:        c.FlySpeed,
			AxisX:        c.MoveX,
			AxisY:        c.MoveY,
			AxisZ:        c.MoveZ,
			MouseLook:    c.MouseLook,
			SensitivityX: c.SensitivityX,
			SensitivityY: c.SensitivityY,
		}).
		WithBundle(transform.NewBundle(transformDeps...)).
		With(camera.NewAutoFovSystem(), camera.AutoFovSystemName, prefab.SystemName).
		With(systems.ShowFovSystem{}, systems.ShowFovSystemName, camera.AutoFovSystemName).
		WithBundle(&ui.Bundle{Measure: s.Measure}).
		Build()
}
