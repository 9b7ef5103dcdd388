package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig is the project-level configuration read from loco.yml.
type AppConfig struct {
	Name string // app/package name exposed to templates
}

// LoadAppConfig reads loco.yml from the project root. A missing file is
// not an error; the app name falls back to the go.mod module path, then
// to the directory name.
func LoadAppConfig(projectDir string) (AppConfig, error) {
	cfg := AppConfig{}

	v := viper.New()
	v.SetConfigName("loco")
	v.SetConfigType("yaml")
	v.AddConfigPath(projectDir)

	if err := v.ReadInConfig(); err == nil {
		cfg.Name = v.GetString("app.name")
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
		return cfg, fmt.Errorf("reading loco.yml: %w", err)
	}

	if cfg.Name == "" {
		if module, err := modulePath(projectDir); err == nil {
			cfg.Name = module
		}
	}
	if cfg.Name == "" {
		abs, err := filepath.Abs(projectDir)
		if err == nil {
			cfg.Name = filepath.Base(abs)
		}
	}

	return cfg, nil
}

// modulePath reads the module path from go.mod.
func modulePath(projectDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("reading go.mod: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module ")), nil
		}
	}
	return "", fmt.Errorf("module path not found in go.mod")
}
