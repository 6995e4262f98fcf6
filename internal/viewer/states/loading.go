package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/engine/assets"
	"github.com/Faultbox/flyview/internal/engine/input"
	"github.com/Faultbox/flyview/internal/engine/ui"
	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/internal/viewer/prefab"
)

// LoadingTextID is the ui element showing load progress.
const LoadingTextID = "loading"

// Loading creates the ui layouts and loads the scene, then hands over to
// Example. Any failed asset quits.
type Loading struct {
	ScenePath string
	Layouts   []string

	progress *assets.ProgressCounter
	scene    *assets.Handle[*prefab.Loaded]
}

// NewLoading creates the loading state.
func NewLoading(scenePath string, layouts []string) *Loading {
	return &Loading{ScenePath: scenePath, Layouts: layouts}
}

// OnStart implements State.
func (s *Loading) OnStart(data *StateData) {
	s.progress = assets.NewProgressCounter()
	creator := ui.NewCreator(data.World, data.Loader)
	for _, l := range s.Layouts {
		creator.Create(l, s.progress)
	}
	s.scene = prefab.Load(data.Loader, s.ScenePath, s.progress)
	logger.Info("loading scene",
		zap.String("scene", s.ScenePath),
		zap.Strings("layouts", s.Layouts),
	)
}

// OnStop implements State.
func (s *Loading) OnStop(*StateData) {}

// Update implements State.
func (s *Loading) Update(data *StateData) Trans {
	if t, ok := ui.NewFinder(data.World).Text(LoadingTextID); ok {
		t.Text = fmt.Sprintf("Loading... %d/%d", s.progress.NumFinished(), s.progress.NumAssets())
	}

	switch s.progress.Complete() {
	case assets.Failed:
		logger.Error("Failed to load the scene", zap.Error(s.progress.Err()))
		return Quit()
	case assets.Complete:
		logger.Info("Loading finished. Moving to the main state.")
		return Switch(NewExample(s.scene))
	default:
		return None()
	}
}

// HandleEvent implements State.
func (s *Loading) HandleEvent(data *StateData, ev input.Event) Trans {
	if ev.Type == input.EventQuit || data.Action(ev, "quit") {
		return Quit()
	}
	return None()
}
