package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// PathEnv names the variable consulted when no path is passed to Load.
	PathEnv     = "CONFIG_PATH"
	defaultPath = "./config.yaml"
)

// Load reads the messenger configuration. Values resolve as
// ENV > YAML > env-default tags.
//
// The YAML file is path when non-empty (the CLI's --config flag), else
// $CONFIG_PATH, else ./config.yaml. A named file must exist; the default
// file is optional and its absence means ENV + defaults only.
func Load(path string) (*Config, error) {
	path, required := resolvePath(path)

	var cfg Config
	err := cleanenv.ReadConfig(path, &cfg)
	switch {
	case err == nil:
	case !required && errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func resolvePath(flagPath string) (path string, required bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv(PathEnv); env != "" {
		return env, true
	}
	return defaultPath, false
}
