// Package config handles catalog and application configuration loading.
package config

// Config holds all application settings.
type Config struct {
	Mesh     MeshConfig               `yaml:"mesh"`
	Textures TextureConfig            `yaml:"textures"`
	Logging  LoggingConfig            `yaml:"logging"`
	Fixtures map[string]FixtureConfig `yaml:"fixtures"`
}

// MeshConfig holds tessellation settings.
type MeshConfig struct {
	Cells  int    `yaml:"cells"`   // marching cubes resolution per axis
	OutDir string `yaml:"out_dir"` // STL output directory
}

// TextureConfig holds texture resolution settings.
type TextureConfig struct {
	Root string `yaml:"root"` // prefix prepended to relative texture paths
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// FixtureConfig is one named fixture preset in the catalog.
type FixtureConfig struct {
	Variant string    `yaml:"variant"`
	Size    []float64 `yaml:"size"` // full [width depth height]
	At      []float64 `yaml:"at"`   // world position, optional

	Thickness float64 `yaml:"thickness"`
	DoorGap   float64 `yaml:"door_gap"`

	PanelStyle   string             `yaml:"panel_style"`
	HandleStyle  string             `yaml:"handle_style"`
	HandleVPos   string             `yaml:"handle_vpos"`
	HandleConfig map[string]float64 `yaml:"handle_config"`

	OpenTop bool   `yaml:"open_top"`
	Texture string `yaml:"texture"`

	Orientation string `yaml:"orientation"` // single cabinets
	Shelves     int    `yaml:"shelves"`     // open shelving
	SolidBody   bool   `yaml:"solid_body"`  // panel cabinets

	// Housing cabinets. Nil axis extents and paddings are derived from the
	// interior size; side 0 of each padding pair is the negative-axis face.
	Interior *InteriorConfig `yaml:"interior"`
	Width    *float64        `yaml:"width"`
	Depth    *float64        `yaml:"depth"`
	Height   *float64        `yaml:"height"`
	PadLeft  *float64        `yaml:"pad_left"`
	PadRight *float64        `yaml:"pad_right"`
	PadFront *float64        `yaml:"pad_front"`
	PadBack  *float64        `yaml:"pad_back"`
	PadBot   *float64        `yaml:"pad_bottom"`
	PadTop   *float64        `yaml:"pad_top"`
}

// InteriorConfig describes the box interior a housing preset wraps.
type InteriorConfig struct {
	Name string    `yaml:"name"`
	Size []float64 `yaml:"size"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Cells:  100,
			OutDir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
