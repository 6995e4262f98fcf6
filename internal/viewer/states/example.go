package states

import (
	"github.com/Faultbox/flyview/internal/engine/assets"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/input"
	"github.com/Faultbox/flyview/internal/engine/ui"
	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/internal/viewer/prefab"
)

// Example is the running state: it spawns the loaded scene and removes the
// loading text.
type Example struct {
	scene *assets.Handle[*prefab.Loaded]
	root  ecs.Entity
}

// NewExample creates the running state for a loaded scene.
func NewExample(scene *assets.Handle[*prefab.Loaded]) *Example {
	return &Example{scene: scene}
}

// Root returns the entity carrying the scene.
func (s *Example) Root() ecs.Entity {
	return s.root
}

// OnStart implements State.
func (s *Example) OnStart(data *StateData) {
	s.root = data.World.Create()
	ecs.Insert(data.World, s.root, &prefab.Ref{Handle: s.scene})

	e, ok := ui.NewFinder(data.World).Find(LoadingTextID)
	if !ok {
		logger.Error("Unable to find Ui Text `loading`")
		return
	}
	if err := data.World.Delete(e); err != nil {
		logger.Error(err.Error())
	}
}

// OnStop implements State.
func (s *Example) OnStop(*StateData) {}

// Update implements State.
func (s *Example) Update(*StateData) Trans {
	return None()
}

// HandleEvent implements State.
func (s *Example) HandleEvent(data *StateData, ev input.Event) Trans {
	switch {
	case ev.Type == input.EventQuit, data.Action(ev, "quit"):
		return Quit()
	case data.Action(ev, "screenshot"):
		data.ScreenshotRequested = true
	}
	return None()
}
