// Package config stores per-plugin YAML settings under <dataDir>/config/<plugin>/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the subdir under the data root: data/config
	ConfigDirName = "config"
	// ConfigFileName is the config file name inside each plugin dir
	ConfigFileName = "config.yaml"
	// DataDirEnv overrides the default data root when no dir is given.
	DataDirEnv     = "DATA_DIR"
	defaultDataDir = "data"
)

// DataDir resolves the data root: dir if set, else $DATA_DIR, else "data".
func DataDir(dir string) string {
	if dir != "" {
		return dir
	}
	if env := os.Getenv(DataDirEnv); env != "" {
		return env
	}
	return defaultDataDir
}

// Dir returns dataDir/config/pluginName.
func Dir(dataDir, pluginName string) string {
	return filepath.Join(dataDir, ConfigDirName, pluginName)
}

// Path returns dataDir/config/pluginName/config.yaml.
func Path(dataDir, pluginName string) string {
	return filepath.Join(Dir(dataDir, pluginName), ConfigFileName)
}

// Exists reports whether the plugin config file exists.
func Exists(dataDir, pluginName string) bool {
	_, err := os.Stat(Path(dataDir, pluginName))
	return err == nil
}

// Read unmarshals the plugin config into dest. A missing or empty file is not an
// error and leaves dest unchanged.
func Read(dataDir, pluginName string, dest any) error {
	data, err := os.ReadFile(Path(dataDir, pluginName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config read %s: %w", pluginName, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("config unmarshal %s: %w", pluginName, err)
	}
	return nil
}

// Save writes v as the plugin config, creating parent dirs as needed.
func Save(dataDir, pluginName string, v any) error {
	if err := os.MkdirAll(Dir(dataDir, pluginName), 0o755); err != nil {
		return fmt.Errorf("config mkdir %s: %w", pluginName, err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("config marshal %s: %w", pluginName, err)
	}
	if err := os.WriteFile(Path(dataDir, pluginName), data, 0o644); err != nil {
		return fmt.Errorf("config write %s: %w", pluginName, err)
	}
	return nil
}

// ReadOrInit reads the plugin config into dest. When no file exists yet, the
// current contents of dest are saved as the default file.
func ReadOrInit(dataDir, pluginName string, dest any) error {
	if !Exists(dataDir, pluginName) {
		return Save(dataDir, pluginName, dest)
	}
	return Read(dataDir, pluginName, dest)
}

// Delete removes the plugin config file and, if empty, its directory.
func Delete(dataDir, pluginName string) error {
	if err := os.Remove(Path(dataDir, pluginName)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config delete %s: %w", pluginName, err)
	}
	_ = os.Remove(Dir(dataDir, pluginName))
	return nil
}
