// Package systems holds the viewer's own per-frame systems.
package systems

import (
	"fmt"

	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/ui"
	"github.com/Faultbox/flyview/internal/viewer/prefab"
)

// ShowFovSystemName is the dispatcher name of the FOV overlay system.
const ShowFovSystemName = "show_fov"

// UI element ids written by ShowFovSystem.
const (
	ScreenAspectID = "screen_aspect"
	CameraAspectID = "camera_aspect"
	CameraFovID    = "camera_fov"
)

// ShowFovSystem writes the screen aspect ratio and the projection of the
// show_fov camera into the overlay texts. Missing elements are skipped.
type ShowFovSystem struct{}

// Run implements ecs.System.
func (ShowFovSystem) Run(w *ecs.World) {
	finder := ui.NewFinder(w)

	if screen, ok := ecs.Resource[ecs.ScreenDimensions](w); ok {
		if t, ok := finder.Text(ScreenAspectID); ok {
			t.Text = fmt.Sprintf("Screen Aspect Ratio: %.2f", screen.AspectRatio())
		}
	}

	e, ok := w.FindTag(prefab.ShowFovTag)
	if !ok {
		return
	}
	cam, ok := ecs.Get[camera.Camera](w, e)
	if !ok {
		return
	}
	fovy := camera.Fovy(cam.Projection)
	aspect := camera.Aspect(cam.Projection)
	if t, ok := finder.Text(CameraAspectID); ok {
		t.Text = fmt.Sprintf("Camera Aspect Ratio: %.2f", aspect)
	}
	if t, ok := finder.Text(CameraFovID); ok {
		t.Text = fmt.Sprintf("Camera Fov: (%.2f, %.2f)", fovy*aspect, fovy)
	}
}
