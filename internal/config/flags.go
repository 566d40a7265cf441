package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagOut        = flag.String("out", "", "Output directory for exported scenes")
	flagFormat     = flag.String("format", "", "Export format: gltf or glb")
	flagTextureDir = flag.String("texture-dir", "", "Directory external textures are read from")
	flagNoTextures = flag.Bool("no-external-textures", false, "Resolve only embedded texture clips")
	flagUnitScale  = flag.Float64("unit-scale", 0, "Override the document's unit scale factor")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Export.OutDir = *flagOut
	}
	if *flagFormat != "" {
		cfg.Export.Format = *flagFormat
	}
	if *flagTextureDir != "" {
		cfg.Convert.TextureDir = *flagTextureDir
	}
	if *flagNoTextures {
		cfg.Convert.ExternalTextures = false
	}
	if *flagUnitScale > 0 {
		cfg.Convert.UnitScale = *flagUnitScale
	}
}
