package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no settings path is given.
const EnvPath = "OPENCRAFT_CONFIG"

// Settings are the user tunables read from a YAML file. Anything that shapes the
// world itself (chunk dimensions, reach, speeds) stays a constant.
type Settings struct {
	Window  WindowSettings  `yaml:"window"`
	World   WorldSettings   `yaml:"world"`
	Save    SaveSettings    `yaml:"save"`
	Assets  AssetSettings   `yaml:"assets"`
	Logging LoggingSettings `yaml:"logging"`
}

type WindowSettings struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	Vsync      bool   `yaml:"vsync"`
}

type WorldSettings struct {
	Seed       int64 `yaml:"seed"`
	Superflat  bool  `yaml:"superflat"`
	FlatHeight int   `yaml:"flat_height"`
	// Radius in chunks generated around spawn before the first frame.
	Pregenerate int `yaml:"pregenerate"`
	Workers     int `yaml:"workers"`
}

type SaveSettings struct {
	Dir     string `yaml:"dir"`
	Backend string `yaml:"backend"`
}

type AssetSettings struct {
	Textures    string `yaml:"textures"`
	TextureSize int    `yaml:"texture_size"`
}

type LoggingSettings struct {
	Level string `yaml:"level"`
}

const (
	BackendLevelDB = "leveldb"
	BackendBadger  = "badger"
)

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Minecraft in Go",
		},
		World: WorldSettings{
			Seed:        Seed,
			FlatHeight:  4,
			Pregenerate: 4,
			Workers:     4,
		},
		Save: SaveSettings{
			Dir:     "save",
			Backend: BackendLevelDB,
		},
		Assets: AssetSettings{
			Textures:    "assets/textures",
			TextureSize: 16,
		},
		Logging: LoggingSettings{Level: "info"},
	}
}

// Load reads the settings file at path, falling back to $OPENCRAFT_CONFIG when path
// is empty. A missing file is not an error: the defaults are returned.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return s, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects values the game cannot start with.
func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	switch s.Save.Backend {
	case BackendLevelDB, BackendBadger:
	default:
		return fmt.Errorf("unknown save backend %q", s.Save.Backend)
	}
	if s.World.Pregenerate < 0 {
		return fmt.Errorf("pregenerate radius %d must not be negative", s.World.Pregenerate)
	}
	if s.World.FlatHeight < 1 || s.World.FlatHeight >= ChunkHeight {
		return fmt.Errorf("flat height %d out of range", s.World.FlatHeight)
	}
	if s.Assets.TextureSize <= 0 {
		return fmt.Errorf("texture size %d must be positive", s.Assets.TextureSize)
	}
	return nil
}
