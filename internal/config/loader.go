package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScene is returned when a scene file parses but describes
// bodies or rain settings that cannot be simulated.
var ErrInvalidScene = errors.New("config: invalid scene")

// ErrUnknownScene is returned for built-in scene IDs that do not exist.
var ErrUnknownScene = errors.New("config: unknown scene")

// LoadSim loads the simulation configuration.
// Search order: customPath -> ~/.rigidbox/configs/sim.yaml -> ./configs/sim.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadSim(customPath string) (SimConfig, error) {
	cfg := DefaultSimConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sim.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultSimConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "sim.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultSimConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSimYAML, &cfg); err != nil {
		return DefaultSimConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rigidbox", "configs", filename)
}

// ApplyPreset modifies the timing config based on a precision preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *SimConfig, preset Preset) {
	if preset == "" {
		return
	}
	cfg.Timing.Substeps = SubstepsForPreset(preset)
}

// ParseScene parses and validates a YAML scene.
func ParseScene(data []byte) (SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return SceneFile{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := sf.Validate(); err != nil {
		return SceneFile{}, err
	}
	return sf, nil
}

// LoadScene reads a scene file from disk. A missing id is taken from the
// file name.
func LoadScene(filePath string) (SceneFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return SceneFile{}, fmt.Errorf("failed to read scene %s: %w", filePath, err)
	}
	sf, err := ParseScene(data)
	if err != nil {
		return SceneFile{}, fmt.Errorf("scene %s: %w", filePath, err)
	}
	if sf.ID == "" {
		sf.ID = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	if sf.Title == "" {
		sf.Title = sf.ID
	}
	return sf, nil
}

// BuiltinScene returns an embedded scene by ID.
func BuiltinScene(id string) (SceneFile, error) {
	data, err := builtinScenes.ReadFile(path.Join("scenes", id+".yaml"))
	if err != nil {
		return SceneFile{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	sf, err := ParseScene(data)
	if err != nil {
		return SceneFile{}, fmt.Errorf("builtin scene %s: %w", id, err)
	}
	return sf, nil
}

// BuiltinSceneIDs lists the embedded scenes, sorted.
func BuiltinSceneIDs() []string {
	entries, err := fs.ReadDir(builtinScenes, "scenes")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(ids)
	return ids
}

// Validate checks that every body and the rain block describe something
// the physics engine accepts.
func (sf SceneFile) Validate() error {
	if len(sf.Bodies) == 0 && (sf.Rain == nil || sf.Rain.Count == 0) {
		return fmt.Errorf("%w: no bodies", ErrInvalidScene)
	}

	for i, b := range sf.Bodies {
		label := b.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("%w: body %s: mass must be greater than zero", ErrInvalidScene, label)
		}
		if b.Width < 0 || b.Height < 0 {
			return fmt.Errorf("%w: body %s: negative size", ErrInvalidScene, label)
		}
		if b.Restitution != nil && (*b.Restitution < 0 || *b.Restitution > 1) {
			return fmt.Errorf("%w: body %s: restitution must be within [0,1]", ErrInvalidScene, label)
		}
	}

	if r := sf.Rain; r != nil {
		switch {
		case r.Count < 0:
			return fmt.Errorf("%w: rain count is negative", ErrInvalidScene)
		case r.MinX > r.MaxX, r.MinY > r.MaxY:
			return fmt.Errorf("%w: rain area is inverted", ErrInvalidScene)
		case r.MinSize < 0 || r.MinSize > r.MaxSize:
			return fmt.Errorf("%w: rain size range is invalid", ErrInvalidScene)
		case !(r.MinMass > 0) || r.MinMass > r.MaxMass:
			return fmt.Errorf("%w: rain mass range is invalid", ErrInvalidScene)
		}
	}

	return nil
}
