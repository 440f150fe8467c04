package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a boot.
// Values are populated from envboot.toml, ENVBOOT_* env vars, and CLI flags.
type Config struct {
	StorageRoot  string `mapstructure:"storage_root"`
	ModuleExt    string `mapstructure:"module_ext"`
	StateDir     string `mapstructure:"state_dir"`
	GuardMarker  string `mapstructure:"guard_marker"`
	ForceMenu    bool   `mapstructure:"force_menu"`
	ModuleRunner string `mapstructure:"module_runner"`
	MenuCommand  string `mapstructure:"menu_command"`
	Linger       bool   `mapstructure:"linger"`
	LogLevel     string `mapstructure:"log_level"`
	LogFile      string `mapstructure:"log_file"`
}

// EnvironmentsRoot is <storage_root>/environments.
func (c Config) EnvironmentsRoot() string {
	return filepath.Join(c.StorageRoot, "environments")
}

// MarkerPath resolves guard_marker against the storage root.
func (c Config) MarkerPath() string {
	if c.GuardMarker == "" || filepath.IsAbs(c.GuardMarker) {
		return c.GuardMarker
	}
	return filepath.Join(c.StorageRoot, c.GuardMarker)
}

// Init wires config file lookup and environment variables into viper.
// An explicit file path overrides the search.
func Init(file string) {
	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("envboot")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("ENVBOOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. A missing config
// file is not an error.
func Load() (Config, error) {
	viper.SetDefault("storage_root", "/vol/external01/wiiu")
	viper.SetDefault("module_ext", ".rpx")
	viper.SetDefault("state_dir", ".envboot")
	viper.SetDefault("guard_marker", "environments/tiramisu/modules/setup/50_hbl_installer.rpx")
	viper.SetDefault("force_menu", true)
	viper.SetDefault("module_runner", "")
	viper.SetDefault("menu_command", "")
	viper.SetDefault("linger", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", "")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if !strings.HasPrefix(cfg.ModuleExt, ".") {
		cfg.ModuleExt = "." + cfg.ModuleExt
	}
	return cfg, nil
}
