package scenes

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/rigidbox/internal/config"
	"github.com/vovakirdan/rigidbox/internal/registry"
)

var (
	cfgMu     sync.RWMutex
	simConfig = config.DefaultSimConfig()
)

// SetConfig replaces the simulation config used by sandboxes created after
// the call.
func SetConfig(cfg config.SimConfig) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	simConfig = cfg
}

// Config returns the simulation config new sandboxes are built with.
func Config() config.SimConfig {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return simConfig
}

func init() {
	for _, id := range config.BuiltinSceneIDs() {
		scene, err := config.BuiltinScene(id)
		if err != nil {
			panic(fmt.Sprintf("scenes: embedded scene %q: %v", id, err))
		}
		register(scene)
	}
}

func register(scene config.SceneFile) {
	registry.Register(scene.ID, func() registry.Scenario {
		return NewSandbox(scene, Config())
	})
}

// RegisterFile makes a scene loaded from disk available through the
// registry under its ID.
func RegisterFile(scene config.SceneFile) error {
	if err := scene.Validate(); err != nil {
		return err
	}
	if registry.Exists(scene.ID) {
		return fmt.Errorf("scenes: scene %q already registered", scene.ID)
	}
	register(scene)
	return nil
}
